package handlers

import (
	"errors"
	"log"
	"math/rand"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/impostor-dev/impostor/db"
	"github.com/impostor-dev/impostor/internal/models"
	"github.com/impostor-dev/impostor/internal/policies"
	"github.com/impostor-dev/impostor/internal/types"
	"github.com/impostor-dev/impostor/internal/utils"
	"gorm.io/gorm"
)

const MinPlayers = 3

type CreateGameRequest struct {
	CategoryID uint     `json:"category_id" binding:"required"`
	Players    []string `json:"players" binding:"required,min=3,dive,required,max=255"`
}

type PlayerResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type GameResponse struct {
	ID         uint             `json:"id"`
	CategoryID uint             `json:"category_id"`
	OwnerID    uint             `json:"owner_id"`
	Players    []PlayerResponse `json:"players,omitempty"`
	RoundCount int64            `json:"round_count"`
}

func gameResponse(game *models.Game, players []models.Player) GameResponse {
	resp := GameResponse{
		ID:         game.ID,
		CategoryID: game.CategoryID,
		OwnerID:    game.UserID,
	}

	for _, player := range players {
		resp.Players = append(resp.Players, PlayerResponse{
			ID:   player.ID,
			Name: player.Name,
			Role: player.Role,
		})
	}

	err := db.DB.Model(&models.Round{}).Where("game_id = ?", game.ID).Count(&resp.RoundCount).Error

	if err != nil {
		log.Printf("Failed to count rounds for game %d: %v", game.ID, err)
	}

	return resp
}

// findGame resolves a game path parameter, answering 404 when it does not
// exist and 403 when the caller may not view it.
func findGame(ctx *gin.Context, user *models.User) (*models.Game, bool) {
	var game models.Game

	err := db.DB.First(&game, "id = ?", ctx.Param("id")).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, types.Failure("Game not found"))
		} else {
			log.Printf("Failed to retrieve game: %v", err)
			ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		}
		return nil, false
	}

	if !(policies.GamePolicy{}).View(user, &game) {
		ctx.JSON(http.StatusForbidden, types.Failure("You do not have access to this game"))
		return nil, false
	}

	return &game, true
}

func ListGames(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	var games []models.Game

	if err := db.DB.Where("user_id = ?", user.ID).Order("created_at desc").Find(&games).Error; err != nil {
		log.Printf("Failed to retrieve games: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	response := make([]GameResponse, 0, len(games))

	for i := range games {
		response = append(response, gameResponse(&games[i], nil))
	}

	ctx.JSON(http.StatusOK, types.Success(response))
}

// CreateGame creates a game and its roster atomically. Exactly one player,
// drawn uniformly from the roster, gets the impostor role.
func CreateGame(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	var req CreateGameRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("A category and at least 3 player names are required"))
		return
	}

	names := make([]string, 0, len(req.Players))

	for _, name := range req.Players {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		names = append(names, trimmed)
	}

	if len(names) < MinPlayers {
		ctx.JSON(http.StatusUnprocessableEntity, types.Failure("At least 3 player names are required"))
		return
	}

	var category models.Category

	if err := db.DB.First(&category, req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnprocessableEntity, types.Failure("Category not found"))
		} else {
			log.Printf("Failed to retrieve category: %v", err)
			ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		}
		return
	}

	if !(policies.CategoryPolicy{}).View(user, &category) {
		ctx.JSON(http.StatusForbidden, types.Failure("You do not have access to this category"))
		return
	}

	impostorIndex := rand.Intn(len(names))

	game := models.Game{
		UserID:     user.ID,
		CategoryID: category.ID,
	}

	var players []models.Player

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&game).Error; err != nil {
			return err
		}

		for index, name := range names {
			role := models.PlayerRoleNormal
			if index == impostorIndex {
				role = models.PlayerRoleImpostor
			}

			player := models.Player{
				GameID: game.ID,
				Name:   name,
				Role:   role,
			}

			if err := tx.Create(&player).Error; err != nil {
				return err
			}

			players = append(players, player)
		}

		return nil
	})

	if err != nil {
		log.Printf("Failed to create game: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusCreated, types.Success(gameResponse(&game, players)))
}

func ShowGame(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
		return
	}

	game, ok := findGame(ctx, user)

	if !ok {
		return
	}

	var players []models.Player

	if err := db.DB.Where("game_id = ?", game.ID).Order("id").Find(&players).Error; err != nil {
		log.Printf("Failed to retrieve players: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.Failure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.Success(gameResponse(game, players)))
}
