package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fpl-analytics/fpl-analyzer/internal/models"
	"github.com/fpl-analytics/fpl-analyzer/internal/optimizer"
	"github.com/fpl-analytics/fpl-analyzer/internal/services"
	"github.com/fpl-analytics/fpl-analyzer/pkg/utils"
)

type TransferHandler struct {
	players     *services.PlayerStore
	predictions *services.PredictionStore
	refresh     *services.RefreshService
	optimizer   *optimizer.Optimizer
	maxPerTeam  int
}

func NewTransferHandler(players *services.PlayerStore, predictions *services.PredictionStore, refresh *services.RefreshService, opt *optimizer.Optimizer, maxPerTeam int) *TransferHandler {
	return &TransferHandler{
		players:     players,
		predictions: predictions,
		refresh:     refresh,
		optimizer:   opt,
		maxPerTeam:  maxPerTeam,
	}
}

type suggestRequest struct {
	Budget        float64 `json:"budget"`
	FreeTransfers int     `json:"free_transfers" binding:"required,min=1"`
	Gameweek      int     `json:"gameweek"`
	PlayerIDs     []uint  `json:"player_ids" binding:"required,min=1"`
	ApplyPlan     bool    `json:"apply_plan"`
}

// SuggestTransfers ranks candidate swaps for the given squad against every
// player with a stored prediction for the gameweek. With apply_plan set, the
// raw ranking is post-filtered into a coherent plan (unique outgoing player,
// team quota).
func (h *TransferHandler) SuggestTransfers(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	gameweek := req.Gameweek
	if gameweek == 0 {
		current, err := h.refresh.CurrentGameweek(c.Request.Context())
		if err != nil {
			utils.SendUpstreamError(c, "Failed to determine current gameweek")
			return
		}
		gameweek = current
	}

	predictions, err := h.predictions.GetAll(gameweek)
	if err != nil {
		utils.SendInternalError(c, "Failed to load predictions")
		return
	}
	if len(predictions) == 0 {
		utils.SendValidationError(c, "No predictions for gameweek", "generate predictions first")
		return
	}
	predicted := make(map[uint]float64, len(predictions))
	for _, p := range predictions {
		predicted[p.PlayerID] = p.PredictedPoints
	}

	allPlayers, err := h.players.List(services.PlayerFilter{})
	if err != nil {
		utils.SendInternalError(c, "Failed to load players")
		return
	}
	byID := make(map[uint]*models.Player, len(allPlayers))
	for i := range allPlayers {
		byID[allPlayers[i].ID] = &allPlayers[i]
	}

	squad := models.Squad{
		Budget:        req.Budget,
		FreeTransfers: req.FreeTransfers,
	}
	for _, id := range req.PlayerIDs {
		player, ok := byID[id]
		if !ok {
			utils.SendValidationError(c, "Unknown squad player", "no stored snapshot for player")
			return
		}
		points, hasPrediction := predicted[id]
		squad.Players = append(squad.Players, models.SquadPlayer{
			Player:          *player,
			PredictedPoints: points,
			HasPrediction:   hasPrediction,
		})
	}

	pool := make([]optimizer.RatedPlayer, 0, len(predictions))
	for _, pred := range predictions {
		player, ok := byID[pred.PlayerID]
		if !ok {
			continue
		}
		pool = append(pool, optimizer.RatedPlayer{
			Player:          *player,
			PredictedPoints: pred.PredictedPoints,
		})
	}

	suggestions := h.optimizer.SuggestTransfers(squad, pool, req.FreeTransfers)
	if req.ApplyPlan {
		suggestions = optimizer.BuildTransferPlan(squad, suggestions, h.maxPerTeam)
	}

	utils.SendSuccess(c, gin.H{
		"gameweek":    gameweek,
		"suggestions": suggestions,
	})
}
