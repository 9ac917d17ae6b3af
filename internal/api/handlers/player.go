package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fpl-analytics/fpl-analyzer/internal/models"
	"github.com/fpl-analytics/fpl-analyzer/internal/predictor"
	"github.com/fpl-analytics/fpl-analyzer/internal/services"
	"github.com/fpl-analytics/fpl-analyzer/pkg/utils"
)

type PlayerHandler struct {
	players     *services.PlayerStore
	predictions *services.PredictionStore
	refresh     *services.RefreshService
	cache       *services.CacheService
}

func NewPlayerHandler(players *services.PlayerStore, predictions *services.PredictionStore, refresh *services.RefreshService, cache *services.CacheService) *PlayerHandler {
	return &PlayerHandler{
		players:     players,
		predictions: predictions,
		refresh:     refresh,
		cache:       cache,
	}
}

// ListPlayers returns stored player snapshots, optionally filtered.
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	filter := services.PlayerFilter{
		Position: models.Position(c.Query("position")),
		Team:     c.Query("team"),
		Search:   c.Query("search"),
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		v, err := strconv.ParseFloat(maxPrice, 64)
		if err != nil {
			utils.SendValidationError(c, "Invalid max_price", err.Error())
			return
		}
		filter.MaxPrice = v
	}

	ctx := c.Request.Context()
	unfiltered := filter == services.PlayerFilter{}

	// Cache only the unfiltered listing.
	if unfiltered {
		var cached []models.Player
		if err := h.cache.Get(ctx, services.PlayersCacheKey(), &cached); err == nil {
			utils.SendSuccess(c, cached)
			return
		}
	}

	players, err := h.players.List(filter)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch players")
		return
	}

	if unfiltered {
		h.cache.SetWithRetry(ctx, services.PlayersCacheKey(), players, 5*time.Minute, 3)
	}

	utils.SendSuccess(c, players)
}

// GetPlayer returns a single player with qualitative insights derived from
// their latest prediction.
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	playerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid player ID", err.Error())
		return
	}

	player, err := h.players.Get(uint(playerID))
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.SendNotFound(c, "Player not found")
			return
		}
		utils.SendInternalError(c, "Failed to fetch player")
		return
	}

	predictedPoints := 0.0
	if gameweek, err := h.refresh.CurrentGameweek(c.Request.Context()); err == nil {
		if pred, err := h.predictions.Get(player.ID, gameweek); err == nil {
			predictedPoints = pred.PredictedPoints
		}
	}

	utils.SendSuccess(c, gin.H{
		"player":   player,
		"insights": predictor.BuildInsights(player, predictedPoints),
	})
}
