package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/impostor-dev/impostor/internal/auth"
	"github.com/impostor-dev/impostor/internal/models"
)

func TestForgotPasswordNeverLeaksAccounts(t *testing.T) {
	r := setupTest(t)
	createUser(t, "Ann", "ann@example.com", models.RoleUser)

	known := doJSON(t, r, http.MethodPost, "/api/forgot-password", "", map[string]interface{}{
		"email": "ann@example.com",
	})
	unknown := doJSON(t, r, http.MethodPost, "/api/forgot-password", "", map[string]interface{}{
		"email": "nobody@example.com",
	})

	expectStatus(t, known, http.StatusOK)
	expectStatus(t, unknown, http.StatusOK)

	if known.Body.String() != unknown.Body.String() {
		t.Fatal("forgot-password responses must be identical for known and unknown accounts")
	}
}

func TestResetPasswordFlow(t *testing.T) {
	r := setupTest(t)
	_, oldToken := createUser(t, "Ann", "ann@example.com", models.RoleUser)

	resetToken, err := auth.GeneratePasswordResetToken("ann@example.com", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate reset token: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/reset-password", "", map[string]interface{}{
		"token":    resetToken,
		"email":    "ann@example.com",
		"password": "brand-new-pass",
	})
	expectStatus(t, w, http.StatusOK)

	// Old sessions are revoked.
	expectStatus(t, doJSON(t, r, http.MethodGet, "/api/user", oldToken, nil), http.StatusUnauthorized)

	// The new password works, the old one does not.
	login := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]interface{}{
		"login":    "ann@example.com",
		"password": "brand-new-pass",
	})
	expectStatus(t, login, http.StatusOK)

	stale := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]interface{}{
		"login":    "ann@example.com",
		"password": "secret123",
	})
	expectStatus(t, stale, http.StatusUnauthorized)
}

func TestResetPasswordRejectsBadTokens(t *testing.T) {
	r := setupTest(t)
	createUser(t, "Ann", "ann@example.com", models.RoleUser)

	w := doJSON(t, r, http.MethodPost, "/api/reset-password", "", map[string]interface{}{
		"token":    "garbage",
		"email":    "ann@example.com",
		"password": "brand-new-pass",
	})
	expectStatus(t, w, http.StatusBadRequest)

	// A token for one address cannot reset another.
	token, err := auth.GeneratePasswordResetToken("other@example.com", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate reset token: %v", err)
	}

	w = doJSON(t, r, http.MethodPost, "/api/reset-password", "", map[string]interface{}{
		"token":    token,
		"email":    "ann@example.com",
		"password": "brand-new-pass",
	})
	expectStatus(t, w, http.StatusBadRequest)

	// Expired tokens are rejected.
	expired, err := auth.GeneratePasswordResetToken("ann@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("failed to generate expired token: %v", err)
	}

	w = doJSON(t, r, http.MethodPost, "/api/reset-password", "", map[string]interface{}{
		"token":    expired,
		"email":    "ann@example.com",
		"password": "brand-new-pass",
	})
	expectStatus(t, w, http.StatusBadRequest)
}
