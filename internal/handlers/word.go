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

type CreateWordRequest struct {
	Text string `json:"text" binding:"required,max=255"`
}

func CreateWord(ctx *gin.Context) {
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
		ctx.JSON(http.StatusForbidden, types.Failure("You do not have permission to add words to this category"))
		return
	}

	var req CreateWordRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Invalid request"))
		return
	}

	word := models.Word{
		Text:       req.Text,
		CategoryID: category.ID,
	}

	if err := db.DB.Create(&word).Error; err != nil {
		log.Printf("Failed to create word: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusCreated, types.SuccessMessage(WordResponse{
		ID:         word.ID,
		Text:       word.Text,
		CategoryID: word.CategoryID,
	}, "Word added successfully"))
}

func DeleteWord(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	var word models.Word

	err = db.DB.Preload("Category").First(&word, "id = ?", ctx.Param("id")).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, types.Failure("Word not found"))
		} else {
			log.Printf("Failed to retrieve word: %v", err)
			ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		}
		return
	}

	if !(policies.WordPolicy{}).Delete(user, &word) {
		ctx.JSON(http.StatusForbidden, types.Failure("You do not have permission to delete this word"))
		return
	}

	if err := db.DB.Delete(&word).Error; err != nil {
		log.Printf("Failed to delete word: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.Response{Success: true, Message: "Word deleted successfully"})
}
