package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/impostor-dev/impostor/internal/models"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := conn.AutoMigrate(&models.User{}, &models.AuthToken{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return conn
}

func newTestUser(t *testing.T, conn *gorm.DB) *models.User {
	t.Helper()

	user := models.User{
		Name:         "Ann",
		Email:        "ann@example.com",
		PasswordHash: "irrelevant",
		Role:         models.RoleUser,
		IsActive:     true,
	}

	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return &user
}

func TestIssueAndResolveToken(t *testing.T) {
	conn := newTestDB(t)
	user := newTestUser(t, conn)

	plaintext, err := IssueToken(conn, user, "api-token")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	resolved, token, err := ResolveToken(conn, plaintext)
	if err != nil {
		t.Fatalf("ResolveToken failed: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("resolved wrong user: %d", resolved.ID)
	}
	if token.LastUsedAt == nil {
		t.Fatal("expected last_used_at to be stamped")
	}

	// The plaintext is never stored.
	var stored models.AuthToken
	if err := conn.First(&stored, token.ID).Error; err != nil {
		t.Fatalf("failed to load token: %v", err)
	}
	if stored.TokenHash == plaintext {
		t.Fatal("token stored in plaintext")
	}
}

func TestResolveTokenRejectsGarbage(t *testing.T) {
	conn := newTestDB(t)
	newTestUser(t, conn)

	if _, _, err := ResolveToken(conn, "not-a-token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestResolveTokenInactiveUser(t *testing.T) {
	conn := newTestDB(t)
	user := newTestUser(t, conn)

	plaintext, err := IssueToken(conn, user, "api-token")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	if err := conn.Model(user).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate: %v", err)
	}

	if _, _, err := ResolveToken(conn, plaintext); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for inactive account, got %v", err)
	}
}

func TestRevokeAllTokens(t *testing.T) {
	conn := newTestDB(t)
	user := newTestUser(t, conn)

	first, _ := IssueToken(conn, user, "one")
	second, _ := IssueToken(conn, user, "two")

	if err := RevokeAllTokens(conn, user.ID); err != nil {
		t.Fatalf("RevokeAllTokens failed: %v", err)
	}

	for _, plaintext := range []string{first, second} {
		if _, _, err := ResolveToken(conn, plaintext); err != ErrInvalidToken {
			t.Fatalf("expected token to be revoked, got %v", err)
		}
	}
}
