package handlers_test

import (
	"net/http"
	"testing"

	"github.com/impostor-dev/impostor/db"
	"github.com/impostor-dev/impostor/internal/config"
	"github.com/impostor-dev/impostor/internal/models"
)

func TestAdminEndpointsRequireAdminRole(t *testing.T) {
	r := setupTest(t)
	_, userToken := createUser(t, "Ann", "ann@example.com", models.RoleUser)

	w := doJSON(t, r, http.MethodGet, "/api/admin/users", userToken, nil)
	expectStatus(t, w, http.StatusForbidden)
}

func TestAdminCannotActOnSelf(t *testing.T) {
	r := setupTest(t)
	admin, adminToken := createUser(t, "Root", "root@example.com", models.RoleAdmin)

	base := "/api/admin/users/" + itoa(admin.ID)

	w := doJSON(t, r, http.MethodPut, base+"/role", adminToken, map[string]interface{}{"role": "user"})
	expectStatus(t, w, http.StatusForbidden)

	w = doJSON(t, r, http.MethodPut, base+"/toggle-active", adminToken, nil)
	expectStatus(t, w, http.StatusForbidden)

	w = doJSON(t, r, http.MethodDelete, base, adminToken, nil)
	expectStatus(t, w, http.StatusForbidden)

	// The account is untouched.
	var fresh models.User
	if err := db.DB.First(&fresh, admin.ID).Error; err != nil {
		t.Fatalf("admin account disappeared: %v", err)
	}
	if !fresh.IsActive || fresh.Role != models.RoleAdmin {
		t.Fatalf("admin account mutated: %+v", fresh)
	}
}

func TestDeactivatedAdminLosesAccess(t *testing.T) {
	r := setupTest(t)
	_, rootToken := createUser(t, "Root", "root@example.com", models.RoleAdmin)
	second, secondToken := createUser(t, "Backup", "backup@example.com", models.RoleAdmin)

	w := doJSON(t, r, http.MethodPut, "/api/admin/users/"+itoa(second.ID)+"/toggle-active", rootToken, nil)
	expectStatus(t, w, http.StatusOK)

	// The deactivated admin's token no longer resolves.
	w = doJSON(t, r, http.MethodGet, "/api/admin/users", secondToken, nil)
	expectStatus(t, w, http.StatusUnauthorized)

	// An inactive admin may then be demoted; the active one remains.
	w = doJSON(t, r, http.MethodPut, "/api/admin/users/"+itoa(second.ID)+"/role", rootToken, map[string]interface{}{"role": "user"})
	expectStatus(t, w, http.StatusOK)

	var activeAdmins int64
	db.DB.Model(&models.User{}).Where("role = ? AND is_active = ?", models.RoleAdmin, true).Count(&activeAdmins)
	if activeAdmins != 1 {
		t.Fatalf("expected exactly one active admin to remain, got %d", activeAdmins)
	}
}

func TestAdminUpdateRoleAndDeleteUser(t *testing.T) {
	r := setupTest(t)
	_, adminToken := createUser(t, "Root", "root@example.com", models.RoleAdmin)
	user, _ := createUser(t, "Ann", "ann@example.com", models.RoleUser)

	base := "/api/admin/users/" + itoa(user.ID)

	w := doJSON(t, r, http.MethodPut, base+"/role", adminToken, map[string]interface{}{"role": "superuser"})
	expectStatus(t, w, http.StatusUnprocessableEntity)

	w = doJSON(t, r, http.MethodPut, base+"/role", adminToken, map[string]interface{}{"role": "admin"})
	expectStatus(t, w, http.StatusOK)

	var fresh models.User
	if err := db.DB.First(&fresh, user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if fresh.Role != models.RoleAdmin {
		t.Fatalf("expected promoted role, got %q", fresh.Role)
	}
}

func TestAdminDeleteRegularUser(t *testing.T) {
	r := setupTest(t)
	_, adminToken := createUser(t, "Root", "root@example.com", models.RoleAdmin)
	user, _ := createUser(t, "Ann", "ann@example.com", models.RoleUser)

	w := doJSON(t, r, http.MethodDelete, "/api/admin/users/"+itoa(user.ID), adminToken, nil)
	expectStatus(t, w, http.StatusOK)

	var count int64
	db.DB.Model(&models.User{}).Where("id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Fatal("expected the user to be deleted")
	}
}

func TestAdminDeleteDefaultCategoryBadRequest(t *testing.T) {
	r := setupTest(t)
	_, adminToken := createUser(t, "Root", "root@example.com", models.RoleAdmin)
	shared := createCategory(t, nil, "Shared", true)

	w := doJSON(t, r, http.MethodDelete, "/api/admin/categories/"+itoa(shared.ID), adminToken, nil)
	expectStatus(t, w, http.StatusBadRequest)
}

func TestToggleDefaultCategoryExclusive(t *testing.T) {
	r := setupTest(t)
	_, adminToken := createUser(t, "Root", "root@example.com", models.RoleAdmin)

	createCategory(t, nil, "First", true)
	second := createCategory(t, nil, "Second", false)

	config.Active.ExclusiveDefaultCategory = true

	w := doJSON(t, r, http.MethodPut, "/api/admin/categories/"+itoa(second.ID)+"/toggle-default", adminToken, nil)
	expectStatus(t, w, http.StatusOK)

	var defaults []models.Category
	db.DB.Where("is_default = ?", true).Find(&defaults)
	if len(defaults) != 1 || defaults[0].ID != second.ID {
		t.Fatalf("expected only %d to be default, got %+v", second.ID, defaults)
	}
}

func TestToggleDefaultCategoryNonExclusive(t *testing.T) {
	r := setupTest(t)
	_, adminToken := createUser(t, "Root", "root@example.com", models.RoleAdmin)

	createCategory(t, nil, "First", true)
	second := createCategory(t, nil, "Second", false)

	config.Active.ExclusiveDefaultCategory = false

	w := doJSON(t, r, http.MethodPut, "/api/admin/categories/"+itoa(second.ID)+"/toggle-default", adminToken, nil)
	expectStatus(t, w, http.StatusOK)

	var count int64
	db.DB.Model(&models.Category{}).Where("is_default = ?", true).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 default categories, got %d", count)
	}
}

func TestAdminCreateCategoryDefaults(t *testing.T) {
	r := setupTest(t)
	_, adminToken := createUser(t, "Root", "root@example.com", models.RoleAdmin)

	w := doJSON(t, r, http.MethodPost, "/api/admin/categories", adminToken, map[string]interface{}{
		"name": "Movies",
	})
	expectStatus(t, w, http.StatusCreated)

	var category models.Category
	if err := db.DB.Where("name = ?", "Movies").First(&category).Error; err != nil {
		t.Fatalf("category not created: %v", err)
	}
	if category.Color != "#3B82F6" || category.Icon != "fa-folder" {
		t.Fatalf("expected default color and icon, got %q %q", category.Color, category.Icon)
	}
}
