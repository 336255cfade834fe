package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret string

func InitJWTSecret() error {
	jwtSecret = os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	return nil
}

// SetJWTSecret overrides the signing secret. Tests use this instead of the
// environment.
func SetJWTSecret(secret string) {
	jwtSecret = secret
}

// GeneratePasswordResetToken returns a signed, self-contained reset token
// for the given account. No server-side state is kept; expiry and the email
// binding live in the claims.
func GeneratePasswordResetToken(email string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"email":   email,
		"purpose": "password_reset",
		"exp":     time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// VerifyPasswordResetToken validates a reset token and returns the email it
// was issued for.
func VerifyPasswordResetToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return "", fmt.Errorf("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return "", fmt.Errorf("Invalid token claims")
	}

	if purpose, _ := claims["purpose"].(string); purpose != "password_reset" {
		return "", fmt.Errorf("Invalid token purpose")
	}

	email, ok := claims["email"].(string)

	if !ok || email == "" {
		return "", fmt.Errorf("Invalid email in token claims")
	}

	return email, nil
}
