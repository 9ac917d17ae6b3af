package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fpl-analytics/fpl-analyzer/internal/api/handlers"
	"github.com/fpl-analytics/fpl-analyzer/internal/optimizer"
	"github.com/fpl-analytics/fpl-analyzer/internal/services"
	"github.com/fpl-analytics/fpl-analyzer/pkg/config"
)

// Dependencies carries the wired services the routes need.
type Dependencies struct {
	Players     *services.PlayerStore
	Predictions *services.PredictionStore
	Prediction  *services.PredictionService
	Refresh     *services.RefreshService
	Analyzer    *services.TeamAnalyzer
	Optimizer   *optimizer.Optimizer
	Cache       *services.CacheService
	Logger      *logrus.Logger
}

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, cfg *config.Config, deps Dependencies) {
	playerHandler := handlers.NewPlayerHandler(deps.Players, deps.Predictions, deps.Refresh, deps.Cache)
	predictionHandler := handlers.NewPredictionHandler(deps.Prediction, deps.Refresh)
	transferHandler := handlers.NewTransferHandler(deps.Players, deps.Predictions, deps.Refresh, deps.Optimizer, cfg.MaxPlayersPerTeam)
	teamHandler := handlers.NewTeamHandler(deps.Analyzer)
	dataHandler := handlers.NewDataHandler(deps.Refresh)

	// Player endpoints
	group.GET("/players", playerHandler.ListPlayers)
	group.GET("/players/:id", playerHandler.GetPlayer)

	// Prediction endpoints
	group.GET("/predictions/:gameweek", predictionHandler.GetPredictions)
	group.POST("/predictions/generate", predictionHandler.GeneratePredictions)
	group.PUT("/predictions/:playerId/:gameweek/actual", predictionHandler.AttachActual)

	// Transfer endpoints
	group.POST("/transfers/suggest", transferHandler.SuggestTransfers)

	// Team analysis endpoints
	group.GET("/teams/:entryId/analysis", teamHandler.AnalyzeTeam)

	// Data management endpoints
	group.POST("/data/refresh", dataHandler.RefreshData)
}
