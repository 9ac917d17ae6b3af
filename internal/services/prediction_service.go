package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fpl-analytics/fpl-analyzer/internal/models"
	"github.com/fpl-analytics/fpl-analyzer/internal/predictor"
)

// Trainable is implemented by scoring strategies that need a fit step before
// they can score (the regression variant).
type Trainable interface {
	Fit(players []models.Player) error
}

// PredictionService runs the engine over the stored player pool and owns
// persistence of the results.
type PredictionService struct {
	engine      *predictor.Engine
	strategy    predictor.ScoringStrategy
	players     *PlayerStore
	predictions *PredictionStore
	cache       *CacheService
	logger      *logrus.Logger
	workers     int
}

func NewPredictionService(
	engine *predictor.Engine,
	strategy predictor.ScoringStrategy,
	players *PlayerStore,
	predictions *PredictionStore,
	cache *CacheService,
	logger *logrus.Logger,
	workers int,
) *PredictionService {
	return &PredictionService{
		engine:      engine,
		strategy:    strategy,
		players:     players,
		predictions: predictions,
		cache:       cache,
		logger:      logger,
		workers:     workers,
	}
}

// RefreshPredictions recomputes and upserts predictions for every stored
// player for the given gameweek. Per-player failures are skipped inside the
// engine batch; the skip count is reported back to the caller.
func (s *PredictionService) RefreshPredictions(ctx context.Context, gameweek int) ([]models.Prediction, int, error) {
	players, err := s.players.List(PlayerFilter{})
	if err != nil {
		return nil, 0, err
	}
	if len(players) == 0 {
		return nil, 0, fmt.Errorf("no players available; refresh data first")
	}

	if trainable, ok := s.strategy.(Trainable); ok {
		if err := trainable.Fit(players); err != nil {
			return nil, 0, fmt.Errorf("failed to train scoring model: %w", err)
		}
	}

	inputs := make([]predictor.PredictionInput, 0, len(players))
	for i := range players {
		inputs = append(inputs, predictor.PredictionInput{
			Player:   &players[i],
			Fixture:  players[i].NextFixture(),
			Gameweek: gameweek,
		})
	}

	predictions, skipped := s.engine.GenerateBatch(ctx, inputs, s.workers)

	if err := s.predictions.UpsertBatch(predictions); err != nil {
		return nil, 0, err
	}

	// Invalidate and repopulate the per-gameweek cache.
	cacheKey := PredictionsCacheKey(gameweek)
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		s.logger.Warnf("Failed to invalidate prediction cache: %v", err)
	}
	s.cache.SetWithRetry(ctx, cacheKey, predictions, 30*time.Minute, 3)

	s.logger.WithFields(logrus.Fields{
		"gameweek":  gameweek,
		"generated": len(predictions),
		"skipped":   skipped,
	}).Info("Predictions refreshed")

	return predictions, skipped, nil
}

// GetPredictions returns all predictions for a gameweek, cache first.
func (s *PredictionService) GetPredictions(ctx context.Context, gameweek int) ([]models.Prediction, error) {
	var cached []models.Prediction
	if err := s.cache.Get(ctx, PredictionsCacheKey(gameweek), &cached); err == nil {
		return cached, nil
	}
	return s.predictions.GetAll(gameweek)
}

// AttachActual records actual points and drops the stale cache entry.
func (s *PredictionService) AttachActual(ctx context.Context, playerID uint, gameweek int, actualPoints float64) error {
	if err := s.predictions.AttachActual(playerID, gameweek, actualPoints); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, PredictionsCacheKey(gameweek)); err != nil {
		s.logger.Warnf("Failed to invalidate prediction cache: %v", err)
	}
	return nil
}
