package handlers_test

import (
	"net/http"
	"testing"

	"github.com/impostor-dev/impostor/internal/models"
)

func TestCreateWordRequiresCategoryOwnership(t *testing.T) {
	r := setupTest(t)
	owner, ownerToken := createUser(t, "Ann", "ann@example.com", models.RoleUser)
	_, otherToken := createUser(t, "Bob", "bob@example.com", models.RoleUser)

	category := createCategory(t, owner, "Animals", false)
	path := "/api/categories/" + itoa(category.ID) + "/words"

	w := doJSON(t, r, http.MethodPost, path, ownerToken, map[string]interface{}{"text": "Lion"})
	expectStatus(t, w, http.StatusCreated)

	w = doJSON(t, r, http.MethodPost, path, otherToken, map[string]interface{}{"text": "Sneaky"})
	expectStatus(t, w, http.StatusForbidden)

	w = doJSON(t, r, http.MethodPost, path, ownerToken, map[string]interface{}{"text": ""})
	expectStatus(t, w, http.StatusUnprocessableEntity)
}

func TestDeleteWordDerivesFromCategory(t *testing.T) {
	r := setupTest(t)
	owner, ownerToken := createUser(t, "Ann", "ann@example.com", models.RoleUser)
	_, otherToken := createUser(t, "Bob", "bob@example.com", models.RoleUser)

	category := createCategory(t, owner, "Animals", false)
	word := createWord(t, category, "Lion")

	path := "/api/words/" + itoa(word.ID)

	expectStatus(t, doJSON(t, r, http.MethodDelete, path, otherToken, nil), http.StatusForbidden)
	expectStatus(t, doJSON(t, r, http.MethodDelete, path, ownerToken, nil), http.StatusOK)
	expectStatus(t, doJSON(t, r, http.MethodDelete, path, ownerToken, nil), http.StatusNotFound)
}

func TestListCategoryWords(t *testing.T) {
	r := setupTest(t)
	_, token := createUser(t, "Ann", "ann@example.com", models.RoleUser)

	shared := createCategory(t, nil, "Shared", true)
	createWord(t, shared, "Lion")
	createWord(t, shared, "Tiger")

	var words []struct {
		ID   uint   `json:"id"`
		Text string `json:"text"`
	}
	decodeData(t, doJSON(t, r, http.MethodGet, "/api/categories/"+itoa(shared.ID)+"/words", token, nil), &words)

	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
}
