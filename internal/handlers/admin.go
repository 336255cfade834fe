package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/impostor-dev/impostor/db"
	"github.com/impostor-dev/impostor/internal/config"
	"github.com/impostor-dev/impostor/internal/models"
	"github.com/impostor-dev/impostor/internal/types"
	"github.com/impostor-dev/impostor/internal/utils"
	"gorm.io/gorm"
)

type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

type AdminCategoryRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Color string `json:"color" binding:"omitempty,max=7"`
	Icon  string `json:"icon" binding:"omitempty,max=50"`
}

const (
	defaultCategoryColor = "#3B82F6"
	defaultCategoryIcon  = "fa-folder"
)

// findUser resolves a user path parameter for the admin endpoints.
func findUser(ctx *gin.Context) (*models.User, bool) {
	var user models.User

	err := db.DB.First(&user, "id = ?", ctx.Param("id")).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, types.Failure("User not found"))
		} else {
			log.Printf("Failed to retrieve user: %v", err)
			ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		}
		return nil, false
	}

	return &user, true
}

// isLastActiveAdmin reports whether the given user is the only active admin
// left. Demoting, deactivating or deleting such an account would lock the
// admin surface entirely.
func isLastActiveAdmin(user *models.User) bool {
	if !user.IsAdmin() || !user.IsActive {
		return false
	}

	var count int64

	db.DB.Model(&models.User{}).
		Where("role = ? AND is_active = ? AND id != ?", models.RoleAdmin, true, user.ID).
		Count(&count)

	return count == 0
}

func AdminListUsers(ctx *gin.Context) {
	var users []models.User

	if err := db.DB.Order("created_at desc").Find(&users).Error; err != nil {
		log.Printf("Failed to retrieve users: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for i := range users {
		response = append(response, userResponse(&users[i]))
	}

	ctx.JSON(http.StatusOK, types.Success(response))
}

func AdminUpdateUserRole(ctx *gin.Context) {
	current, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	var req UpdateUserRoleRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Role must be user or admin"))
		return
	}

	user, ok := findUser(ctx)

	if !ok {
		return
	}

	if user.ID == current.ID {
		ctx.JSON(http.StatusForbidden, types.Failure("You cannot change your own role"))
		return
	}

	if req.Role == models.RoleUser && isLastActiveAdmin(user) {
		ctx.JSON(http.StatusForbidden, types.Failure("Cannot demote the last active admin"))
		return
	}

	if err := db.DB.Model(user).Update("role", req.Role).Error; err != nil {
		log.Printf("Failed to update role: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.SuccessMessage(userResponse(user), "Role updated successfully"))
}

func AdminToggleUserStatus(ctx *gin.Context) {
	current, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	user, ok := findUser(ctx)

	if !ok {
		return
	}

	if user.ID == current.ID {
		ctx.JSON(http.StatusForbidden, types.Failure("You cannot deactivate yourself"))
		return
	}

	if user.IsActive && isLastActiveAdmin(user) {
		ctx.JSON(http.StatusForbidden, types.Failure("Cannot deactivate the last active admin"))
		return
	}

	if err := db.DB.Model(user).Update("is_active", !user.IsActive).Error; err != nil {
		log.Printf("Failed to toggle status: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.SuccessMessage(gin.H{
		"id":        user.ID,
		"is_active": user.IsActive,
	}, "Status updated successfully"))
}

func AdminDeleteUser(ctx *gin.Context) {
	current, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	user, ok := findUser(ctx)

	if !ok {
		return
	}

	if user.ID == current.ID {
		ctx.JSON(http.StatusForbidden, types.Failure("You cannot delete yourself"))
		return
	}

	if isLastActiveAdmin(user) {
		ctx.JSON(http.StatusForbidden, types.Failure("Cannot delete the last active admin"))
		return
	}

	if err := db.DB.Delete(user).Error; err != nil {
		log.Printf("Failed to delete user: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.Response{Success: true, Message: "User deleted successfully"})
}

func AdminCreateCategory(ctx *gin.Context) {
	current, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	var req AdminCategoryRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Invalid request"))
		return
	}

	color := req.Color
	if color == "" {
		color = defaultCategoryColor
	}

	icon := req.Icon
	if icon == "" {
		icon = defaultCategoryIcon
	}

	category := models.Category{
		Name:   req.Name,
		Color:  color,
		Icon:   icon,
		UserID: &current.ID,
	}

	if err := db.DB.Create(&category).Error; err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Category name already exists"))
		return
	}

	category.User = current

	ctx.JSON(http.StatusCreated, types.SuccessMessage(categoryResponse(&category), "Category created successfully"))
}

func AdminUpdateCategory(ctx *gin.Context) {
	var req AdminCategoryRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Invalid request"))
		return
	}

	category, ok := findCategory(ctx)

	if !ok {
		return
	}

	updates := map[string]interface{}{"name": req.Name}

	if req.Color != "" {
		updates["color"] = req.Color
	}
	if req.Icon != "" {
		updates["icon"] = req.Icon
	}

	if err := db.DB.Model(category).Updates(updates).Error; err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Category name already exists"))
		return
	}

	ctx.JSON(http.StatusOK, types.SuccessMessage(categoryResponse(category), "Category updated successfully"))
}

func AdminDeleteCategory(ctx *gin.Context) {
	category, ok := findCategory(ctx)

	if !ok {
		return
	}

	if category.IsDefault {
		ctx.JSON(http.StatusBadRequest, types.Failure("A default category cannot be deleted"))
		return
	}

	if err := db.DB.Select("Words").Delete(category).Error; err != nil {
		log.Printf("Failed to delete category: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.Response{Success: true, Message: "Category deleted successfully"})
}

// AdminToggleDefaultCategory flips a category's default flag. With
// ExclusiveDefaultCategory set, promoting a category demotes every other
// default so at most one exists.
func AdminToggleDefaultCategory(ctx *gin.Context) {
	category, ok := findCategory(ctx)

	if !ok {
		return
	}

	message := "Category marked as default"

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if category.IsDefault {
			message = "Category unmarked as default"
			return tx.Model(category).Update("is_default", false).Error
		}

		if config.Active.ExclusiveDefaultCategory {
			if err := tx.Model(&models.Category{}).
				Where("is_default = ?", true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}

		return tx.Model(category).Update("is_default", true).Error
	})

	if err != nil {
		log.Printf("Failed to toggle default category: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.SuccessMessage(categoryResponse(category), message))
}
