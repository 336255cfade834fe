package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/impostor-dev/impostor/db"
	"github.com/impostor-dev/impostor/internal/auth"
	"github.com/impostor-dev/impostor/internal/config"
	"github.com/impostor-dev/impostor/internal/models"
	"github.com/impostor-dev/impostor/internal/services"
	"github.com/impostor-dev/impostor/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// ForgotPassword answers with the same message whether or not the address
// has an account, so it cannot be used to probe for registered emails.
func ForgotPassword(ctx *gin.Context) {
	var req ForgotPasswordRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Invalid request"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User

	err := db.DB.Where("email = ?", email).First(&user).Error

	if err == nil {
		ttl := time.Duration(config.Active.ResetTokenMinute) * time.Minute

		token, tokenErr := auth.GeneratePasswordResetToken(user.Email, ttl)

		if tokenErr != nil {
			log.Printf("Failed to generate reset token: %v", tokenErr)
			ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
			return
		}

		go services.SendPasswordResetEmail(user.Email, token)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.Response{Success: true, Message: "If the account exists, a reset link has been sent"})
}

func ResetPassword(ctx *gin.Context) {
	var req ResetPasswordRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Invalid request"))
		return
	}

	email, err := auth.VerifyPasswordResetToken(req.Token)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, types.Failure("Invalid or expired reset token"))
		return
	}

	if email != strings.ToLower(strings.TrimSpace(req.Email)) {
		ctx.JSON(http.StatusBadRequest, types.Failure("Invalid or expired reset token"))
		return
	}

	var user models.User

	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, types.Failure("Invalid or expired reset token"))
			return
		}
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	if err := db.DB.Model(&user).Update("password_hash", string(passwordHash)).Error; err != nil {
		log.Printf("Failed to update password: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	// Every open session dies with the old password.
	if err := auth.RevokeAllTokens(db.DB, user.ID); err != nil {
		log.Printf("Failed to revoke tokens after reset: %v", err)
	}

	ctx.JSON(http.StatusOK, types.Response{Success: true, Message: "Password has been reset"})
}
