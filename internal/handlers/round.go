package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/impostor-dev/impostor/db"
	"github.com/impostor-dev/impostor/internal/models"
	"github.com/impostor-dev/impostor/internal/types"
	"github.com/impostor-dev/impostor/internal/utils"
	"gorm.io/gorm"
)

type CreateRoundRequest struct {
	WordID           uint  `json:"word_id" binding:"required"`
	ImpostorPlayerID uint  `json:"impostor_player_id" binding:"required"`
	StarterPlayerID  *uint `json:"starter_player_id"`
}

type RoundResponse struct {
	ID               uint            `json:"id"`
	GameID           uint            `json:"game_id"`
	WordID           uint            `json:"word_id"`
	ImpostorPlayerID uint            `json:"impostor_player_id"`
	StarterPlayerID  *uint           `json:"starter_player_id,omitempty"`
	Word             *WordResponse   `json:"word,omitempty"`
	Impostor         *PlayerResponse `json:"impostor,omitempty"`
}

func roundResponse(round *models.Round) RoundResponse {
	resp := RoundResponse{
		ID:               round.ID,
		GameID:           round.GameID,
		WordID:           round.WordID,
		ImpostorPlayerID: round.ImpostorPlayerID,
		StarterPlayerID:  round.StarterPlayerID,
	}

	if round.Word.ID != 0 {
		resp.Word = &WordResponse{ID: round.Word.ID, Text: round.Word.Text, CategoryID: round.Word.CategoryID}
	}

	if round.Impostor.ID != 0 {
		resp.Impostor = &PlayerResponse{ID: round.Impostor.ID, Name: round.Impostor.Name, Role: round.Impostor.Role}
	}

	return resp
}

func ListRounds(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	game, ok := findGame(ctx, user)

	if !ok {
		return
	}

	var rounds []models.Round

	err = db.DB.Preload("Word").Preload("Impostor").
		Where("game_id = ?", game.ID).Order("id").Find(&rounds).Error

	if err != nil {
		log.Printf("Failed to retrieve rounds: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	response := make([]RoundResponse, 0, len(rounds))

	for i := range rounds {
		response = append(response, roundResponse(&rounds[i]))
	}

	ctx.JSON(http.StatusOK, types.Success(response))
}

// CreateRound appends one round to a game's history. The submitted word and
// impostor ids are stored verbatim; the server never re-draws them. The word
// must belong to the game's category and the players to the game itself.
func CreateRound(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	game, ok := findGame(ctx, user)

	if !ok {
		return
	}

	var req CreateRoundRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("A word and an impostor player are required"))
		return
	}

	var word models.Word

	if err := db.DB.First(&word, req.WordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Word not found"))
		} else {
			log.Printf("Failed to retrieve word: %v", err)
			ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		}
		return
	}

	if word.CategoryID != game.CategoryID {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Word does not belong to the game's category"))
		return
	}

	member, err := playerInGame(game.ID, req.ImpostorPlayerID)

	if err != nil {
		log.Printf("Failed to check player membership: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}
	if !member {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Impostor player does not belong to this game"))
		return
	}

	if req.StarterPlayerID != nil {
		member, err := playerInGame(game.ID, *req.StarterPlayerID)

		if err != nil {
			log.Printf("Failed to check player membership: %v", err)
			ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
			return
		}
		if !member {
			ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Starting player does not belong to this game"))
			return
		}
	}

	round := models.Round{
		GameID:           game.ID,
		WordID:           req.WordID,
		ImpostorPlayerID: req.ImpostorPlayerID,
		StarterPlayerID:  req.StarterPlayerID,
	}

	if err := db.DB.Create(&round).Error; err != nil {
		log.Printf("Failed to create round: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusCreated, types.Success(roundResponse(&round)))
}

func playerInGame(gameID, playerID uint) (bool, error) {
	var count int64

	err := db.DB.Model(&models.Player{}).
		Where("id = ? AND game_id = ?", playerID, gameID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}
