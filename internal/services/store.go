package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fpl-analytics/fpl-analyzer/internal/models"
	"github.com/fpl-analytics/fpl-analyzer/pkg/database"
	"github.com/fpl-analytics/fpl-analyzer/pkg/utils"
)

// PlayerStore persists player snapshots. Rows are replaced wholesale on each
// refresh; the FPL element ID is the primary key.
type PlayerStore struct {
	db *database.DB
}

func NewPlayerStore(db *database.DB) *PlayerStore {
	return &PlayerStore{db: db}
}

func (s *PlayerStore) UpsertBatch(players []models.Player) error {
	if len(players) == 0 {
		return nil
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).CreateInBatches(players, 200).Error
	if err != nil {
		return fmt.Errorf("failed to upsert players: %w", err)
	}
	return nil
}

func (s *PlayerStore) Get(id uint) (*models.Player, error) {
	var player models.Player
	if err := s.db.First(&player, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load player %d: %w", id, err)
	}
	return &player, nil
}

// PlayerFilter narrows List results. Zero values mean no constraint.
type PlayerFilter struct {
	Position models.Position
	Team     string
	MaxPrice float64
	Search   string
}

func (s *PlayerStore) List(filter PlayerFilter) ([]models.Player, error) {
	query := s.db.Model(&models.Player{})

	if filter.Position != "" {
		query = query.Where("position = ?", filter.Position)
	}
	if filter.Team != "" {
		query = query.Where("team = ?", filter.Team)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("price <= ?", filter.MaxPrice)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var players []models.Player
	if err := query.Order("total_points DESC").Find(&players).Error; err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// PredictionStore persists predictions keyed uniquely by (player_id,
// gameweek); writes are last-write-wins upserts on that key.
type PredictionStore struct {
	db *database.DB
}

func NewPredictionStore(db *database.DB) *PredictionStore {
	return &PredictionStore{db: db}
}

// predictionUpdateColumns excludes actual_points so a recompute never wipes
// feedback attached after the gameweek completed.
var predictionUpdateColumns = []string{
	"predicted_points", "confidence_score", "form_score", "fixture_difficulty",
	"expected_goals", "expected_assists", "clean_sheet_probability",
	"minutes_probability", "prediction_date",
}

func (s *PredictionStore) Upsert(prediction *models.Prediction) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}, {Name: "gameweek"}},
		DoUpdates: clause.AssignmentColumns(predictionUpdateColumns),
	}).Create(prediction).Error
	if err != nil {
		return fmt.Errorf("failed to upsert prediction: %w", err)
	}
	return nil
}

func (s *PredictionStore) UpsertBatch(predictions []models.Prediction) error {
	if len(predictions) == 0 {
		return nil
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}, {Name: "gameweek"}},
		DoUpdates: clause.AssignmentColumns(predictionUpdateColumns),
	}).CreateInBatches(predictions, 200).Error
	if err != nil {
		return fmt.Errorf("failed to upsert predictions: %w", err)
	}
	return nil
}

func (s *PredictionStore) Get(playerID uint, gameweek int) (*models.Prediction, error) {
	var prediction models.Prediction
	err := s.db.Where("player_id = ? AND gameweek = ?", playerID, gameweek).First(&prediction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load prediction: %w", err)
	}
	return &prediction, nil
}

func (s *PredictionStore) GetAll(gameweek int) ([]models.Prediction, error) {
	var predictions []models.Prediction
	err := s.db.Where("gameweek = ?", gameweek).Order("predicted_points DESC").Find(&predictions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load predictions for gameweek %d: %w", gameweek, err)
	}
	return predictions, nil
}

// AttachActual records the real point outcome for a completed gameweek.
func (s *PredictionStore) AttachActual(playerID uint, gameweek int, actualPoints float64) error {
	result := s.db.Model(&models.Prediction{}).
		Where("player_id = ? AND gameweek = ?", playerID, gameweek).
		Update("actual_points", actualPoints)
	if result.Error != nil {
		return fmt.Errorf("failed to attach actual points: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// DeleteBefore removes predictions generated before the cutoff.
func (s *PredictionStore) DeleteBefore(cutoff time.Time) (int64, error) {
	result := s.db.Where("prediction_date < ?", cutoff).Delete(&models.Prediction{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete old predictions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
