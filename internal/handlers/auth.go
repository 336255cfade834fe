package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/impostor-dev/impostor/db"
	"github.com/impostor-dev/impostor/internal/auth"
	"github.com/impostor-dev/impostor/internal/models"
	"github.com/impostor-dev/impostor/internal/types"
	"github.com/impostor-dev/impostor/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Language string `json:"language" binding:"omitempty,oneof=ca es en"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func userResponse(user *models.User) types.UserResponse {
	return types.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Language:  user.Language,
		IsActive:  user.IsActive,
		AvatarURL: user.AvatarURL,
	}
}

func Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Invalid request"))
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	var existing models.User

	err := db.DB.Where("email = ?", req.Email).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Email already exists"))
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing user: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	// Names back the login-by-name flow, so they are unique like emails.
	err = db.DB.Where("name = ?", req.Name).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Name already taken"))
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing name: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	language := req.Language
	if language == "" {
		language = "ca"
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Role:         models.RoleUser,
		Language:     language,
		IsActive:     true,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	token, err := auth.IssueToken(db.DB, &user, "api-token")

	if err != nil {
		log.Printf("Failed to issue token: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusCreated, types.Success(gin.H{
		"user":  userResponse(&user),
		"token": token,
	}))
}

// Login accepts either the account email or the account name in the login
// field.
func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Invalid request"))
		return
	}

	login := strings.TrimSpace(req.Login)

	var user models.User

	err := db.DB.Where("email = ? OR name = ?", strings.ToLower(login), login).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, types.Failure("Invalid credentials"))
			return
		}
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("Invalid credentials"))
		return
	}

	if !user.IsActive {
		ctx.JSON(http.StatusForbidden, types.Failure("Account disabled"))
		return
	}

	token, err := auth.IssueToken(db.DB, &user, "api-token")

	if err != nil {
		log.Printf("Failed to issue token: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.Success(gin.H{
		"user":  userResponse(&user),
		"token": token,
	}))
}

// Logout revokes the token the request was authenticated with.
func Logout(ctx *gin.Context) {
	token, err := utils.GetCurrentToken(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	if err := auth.RevokeToken(db.DB, token); err != nil {
		log.Printf("Failed to revoke token: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.Response{Success: true, Message: "Logged out successfully"})
}
