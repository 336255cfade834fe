package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/impostor-dev/impostor/db"
	"github.com/impostor-dev/impostor/internal/models"
	"github.com/impostor-dev/impostor/internal/policies"
	"github.com/impostor-dev/impostor/internal/types"
	"github.com/impostor-dev/impostor/internal/utils"
	"gorm.io/gorm"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=255"`
	Description string `json:"description" binding:"max=500"`
}

type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=255"`
	Description string `json:"description" binding:"max=500"`
}

type OwnerSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CategoryResponse struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	IsDefault   bool           `json:"is_default"`
	Color       string         `json:"color,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	Owner       *OwnerSummary  `json:"owner,omitempty"`
	WordsCount  int64          `json:"words_count"`
	Words       []WordResponse `json:"words,omitempty"`
}

type WordResponse struct {
	ID         uint   `json:"id"`
	Text       string `json:"text"`
	CategoryID uint   `json:"category_id"`
}

func categoryResponse(category *models.Category) CategoryResponse {
	resp := CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		IsDefault:   category.IsDefault,
		Color:       category.Color,
		Icon:        category.Icon,
	}

	if category.User != nil {
		resp.Owner = &OwnerSummary{ID: category.User.ID, Name: category.User.Name}
	}

	err := db.DB.Model(&models.Word{}).Where("category_id = ?", category.ID).Count(&resp.WordsCount).Error

	if err != nil {
		log.Printf("Failed to count words for category %d: %v", category.ID, err)
	}

	return resp
}

func wordResponses(words []models.Word) []WordResponse {
	out := make([]WordResponse, 0, len(words))
	for _, word := range words {
		out = append(out, WordResponse{ID: word.ID, Text: word.Text, CategoryID: word.CategoryID})
	}
	return out
}

// findCategory resolves a category path parameter and answers 404 itself
// when the id does not exist.
func findCategory(ctx *gin.Context) (*models.Category, bool) {
	var category models.Category

	err := db.DB.Preload("User").First(&category, "id = ?", ctx.Param("id")).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, types.Failure("Category not found"))
		} else {
			log.Printf("Failed to retrieve category: %v", err)
			ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		}
		return nil, false
	}

	return &category, true
}

// ListCategories returns every category for admins, and own plus default
// categories for regular users.
func ListCategories(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	var categories []models.Category

	query := db.DB.Preload("User").Order("created_at")

	if !user.IsAdmin() {
		query = query.Where("user_id = ? OR user_id IS NULL OR is_default = ?", user.ID, true)
	}

	if err := query.Find(&categories).Error; err != nil {
		log.Printf("Failed to retrieve categories: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	response := make([]CategoryResponse, 0, len(categories))

	for i := range categories {
		response = append(response, categoryResponse(&categories[i]))
	}

	ctx.JSON(http.StatusOK, types.Success(response))
}

func CreateCategory(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	var req CreateCategoryRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Invalid request"))
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		UserID:      &user.ID,
		IsDefault:   false,
	}

	if err := db.DB.Create(&category).Error; err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Category name already exists"))
		return
	}

	category.User = user

	ctx.JSON(http.StatusCreated, types.SuccessMessage(categoryResponse(&category), "Category created successfully"))
}

func ShowCategory(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	category, ok := findCategory(ctx)

	if !ok {
		return
	}

	if !(policies.CategoryPolicy{}).View(user, category) {
		ctx.JSON(http.StatusForbidden, types.Failure("You do not have access to this category"))
		return
	}

	var words []models.Word

	if err := db.DB.Where("category_id = ?", category.ID).Order("created_at").Find(&words).Error; err != nil {
		log.Printf("Failed to retrieve words: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	response := categoryResponse(category)
	response.Words = wordResponses(words)

	ctx.JSON(http.StatusOK, types.Success(response))
}

func UpdateCategory(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	category, ok := findCategory(ctx)

	if !ok {
		return
	}

	if !(policies.CategoryPolicy{}).Update(user, category) {
		ctx.JSON(http.StatusForbidden, types.Failure("You do not have permission to edit this category"))
		return
	}

	var req UpdateCategoryRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Invalid request"))
		return
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
	}

	if err := db.DB.Model(category).Updates(updates).Error; err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Category name already exists"))
		return
	}

	ctx.JSON(http.StatusOK, types.SuccessMessage(categoryResponse(category), "Category updated successfully"))
}

func DeleteCategory(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	category, ok := findCategory(ctx)

	if !ok {
		return
	}

	if !(policies.CategoryPolicy{}).Delete(user, category) {
		ctx.JSON(http.StatusForbidden, types.Failure("You do not have permission to delete this category"))
		return
	}

	// Default categories are undeletable regardless of role.
	if category.IsDefault {
		ctx.JSON(http.StatusForbidden, types.Failure("A default category cannot be deleted"))
		return
	}

	if err := db.DB.Select("Words").Delete(category).Error; err != nil {
		log.Printf("Failed to delete category: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.Response{Success: true, Message: "Category deleted successfully"})
}

// ListCategoryWords returns just the word list of a category.
func ListCategoryWords(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	category, ok := findCategory(ctx)

	if !ok {
		return
	}

	if !(policies.CategoryPolicy{}).View(user, category) {
		ctx.JSON(http.StatusForbidden, types.Failure("You do not have access to this category"))
		return
	}

	var words []models.Word

	if err := db.DB.Where("category_id = ?", category.ID).Order("created_at").Find(&words).Error; err != nil {
		log.Printf("Failed to retrieve words: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.Success(wordResponses(words)))
}
