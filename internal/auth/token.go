package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/impostor-dev/impostor/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrInvalidToken = errors.New("invalid or revoked token")

// IssueToken creates a revocable API token for the user and returns its
// plaintext. Only the SHA-256 digest is persisted, so the plaintext is
// recoverable exactly once, at issue time.
func IssueToken(conn *gorm.DB, user *models.User, name string) (string, error) {
	raw := make([]byte, 32)

	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	plaintext := uuid.NewString() + hex.EncodeToString(raw)
	digest := sha256.Sum256([]byte(plaintext))

	token := models.AuthToken{
		UserID:    user.ID,
		Name:      name,
		TokenHash: hex.EncodeToString(digest[:]),
		Abilities: datatypes.JSON([]byte(`["*"]`)),
	}

	if err := conn.Create(&token).Error; err != nil {
		return "", err
	}

	return plaintext, nil
}

// ResolveToken maps a presented plaintext token to its owning user and stamps
// last_used_at. Inactive accounts do not resolve.
func ResolveToken(conn *gorm.DB, plaintext string) (*models.User, *models.AuthToken, error) {
	digest := sha256.Sum256([]byte(plaintext))

	var token models.AuthToken

	err := conn.Where("token_hash = ?", hex.EncodeToString(digest[:])).First(&token).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidToken
		}
		return nil, nil, err
	}

	var user models.User

	if err := conn.First(&user, token.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidToken
		}
		return nil, nil, err
	}

	if !user.IsActive {
		return nil, nil, ErrInvalidToken
	}

	now := time.Now()
	token.LastUsedAt = &now
	conn.Model(&token).Update("last_used_at", now)

	return &user, &token, nil
}

// RevokeToken deletes the presented token. Used by logout.
func RevokeToken(conn *gorm.DB, token *models.AuthToken) error {
	return conn.Unscoped().Delete(token).Error
}

// RevokeAllTokens invalidates every session of a user, e.g. after a
// password reset.
func RevokeAllTokens(conn *gorm.DB, userID uint) error {
	return conn.Unscoped().Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error
}
