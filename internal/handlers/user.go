package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/impostor-dev/impostor/db"
	"github.com/impostor-dev/impostor/internal/models"
	"github.com/impostor-dev/impostor/internal/services"
	"github.com/impostor-dev/impostor/internal/types"
	"github.com/impostor-dev/impostor/internal/utils"
	"gorm.io/gorm"
)

type UpdateProfileRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Language string `json:"language" binding:"omitempty,oneof=ca es en"`
}

func Me(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	ctx.JSON(http.StatusOK, types.Success(userResponse(user)))
}

func UpdateProfile(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	var req UpdateProfileRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Invalid request"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)

	if email != user.Email {
		var existing models.User

		err := db.DB.Where("email = ? AND id != ?", email, user.ID).First(&existing).Error

		if err == nil {
			ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Email already exists"))
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Database error when checking existing email: %v", err)
			ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
			return
		}
	}

	if name != user.Name {
		var existing models.User

		err := db.DB.Where("name = ? AND id != ?", name, user.ID).First(&existing).Error

		if err == nil {
			ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Name already taken"))
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Database error when checking existing name: %v", err)
			ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
			return
		}
	}

	updates := map[string]interface{}{
		"name":  name,
		"email": email,
	}

	if req.Language != "" {
		updates["language"] = req.Language
	}

	if err := db.DB.Model(user).Updates(updates).Error; err != nil {
		log.Printf("Failed to update user: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.SuccessMessage(userResponse(user), "Profile updated successfully"))
}

func UploadAvatar(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	file, err := ctx.FormFile("avatar")

	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("An avatar image is required"))
		return
	}

	path, url, err := services.StoreAvatar(ctx, file)

	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure(err.Error()))
		return
	}

	previous := user.AvatarPath

	updates := map[string]interface{}{
		"avatar_path": path,
		"avatar_url":  url,
	}

	if err := db.DB.Model(user).Updates(updates).Error; err != nil {
		log.Printf("Failed to update avatar: %v", err)
		services.RemoveAvatar(path)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	services.RemoveAvatar(previous)

	ctx.JSON(http.StatusOK, types.SuccessMessage(userResponse(user), "Avatar updated successfully"))
}
