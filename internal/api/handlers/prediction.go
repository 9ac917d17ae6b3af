package handlers

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fpl-analytics/fpl-analyzer/internal/services"
	"github.com/fpl-analytics/fpl-analyzer/pkg/utils"
)

type PredictionHandler struct {
	prediction *services.PredictionService
	refresh    *services.RefreshService
}

func NewPredictionHandler(prediction *services.PredictionService, refresh *services.RefreshService) *PredictionHandler {
	return &PredictionHandler{
		prediction: prediction,
		refresh:    refresh,
	}
}

// GetPredictions returns all predictions for a gameweek.
func (h *PredictionHandler) GetPredictions(c *gin.Context) {
	gameweek, err := strconv.Atoi(c.Param("gameweek"))
	if err != nil || gameweek < 1 {
		utils.SendValidationError(c, "Invalid gameweek", "gameweek must be a positive integer")
		return
	}

	predictions, err := h.prediction.GetPredictions(c.Request.Context(), gameweek)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch predictions")
		return
	}

	utils.SendSuccess(c, predictions)
}

type generateRequest struct {
	Gameweek int `json:"gameweek"`
}

// GeneratePredictions recomputes predictions for the stored player pool.
// Omitting the gameweek targets the current one.
func (h *PredictionHandler) GeneratePredictions(c *gin.Context) {
	var req generateRequest
	// An empty body means "current gameweek", not a bad request.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
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

	predictions, skipped, err := h.prediction.RefreshPredictions(c.Request.Context(), gameweek)
	if err != nil {
		utils.SendError(c, 500, utils.NewAppError(utils.ErrCodePrediction, "Failed to generate predictions", err.Error()))
		return
	}

	utils.SendSuccessWithMeta(c, predictions, &utils.Meta{
		Total:   int64(len(predictions)),
		Skipped: skipped,
	})
}

// actual_points is a pointer so a recorded zero (a benched player) still
// passes the required binding.
type actualPointsRequest struct {
	ActualPoints *float64 `json:"actual_points" binding:"required"`
}

// AttachActual records the real point outcome for a completed gameweek.
func (h *PredictionHandler) AttachActual(c *gin.Context) {
	playerID, err := strconv.ParseUint(c.Param("playerId"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid player ID", err.Error())
		return
	}
	gameweek, err := strconv.Atoi(c.Param("gameweek"))
	if err != nil || gameweek < 1 {
		utils.SendValidationError(c, "Invalid gameweek", "gameweek must be a positive integer")
		return
	}

	var req actualPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	err = h.prediction.AttachActual(c.Request.Context(), uint(playerID), gameweek, *req.ActualPoints)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.SendNotFound(c, "Prediction not found")
			return
		}
		utils.SendInternalError(c, "Failed to attach actual points")
		return
	}

	utils.SendSuccess(c, gin.H{"updated": true})
}
