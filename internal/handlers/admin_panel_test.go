package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/impostor-dev/impostor/internal/models"
)

func TestAdminDashboardRendersStats(t *testing.T) {
	r := setupTest(t)
	_, adminToken := createUser(t, "Root", "root@example.com", models.RoleAdmin)
	createCategory(t, nil, "Shared", true)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	expectStatus(t, w, http.StatusOK)

	body := w.Body.String()
	if !strings.Contains(body, "Admin dashboard") || !strings.Contains(body, "Categories") {
		t.Fatalf("dashboard HTML missing expected content: %s", body)
	}
}

func TestAdminPanelCookieAuth(t *testing.T) {
	r := setupTest(t)
	_, adminToken := createUser(t, "Root", "root@example.com", models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: adminToken})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	expectStatus(t, w, http.StatusOK)

	if !strings.Contains(w.Body.String(), "root@example.com") {
		t.Fatal("expected the user table to list the admin account")
	}
}

func TestAdminPanelForbiddenForRegularUsers(t *testing.T) {
	r := setupTest(t)
	_, userToken := createUser(t, "Ann", "ann@example.com", models.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	expectStatus(t, w, http.StatusForbidden)
}
