package models

import "time"

// Prediction is the expected point output for one (player, gameweek) pair.
// The pair is unique: recomputation overwrites the existing row.
// ActualPoints is attached externally after the gameweek completes.
type Prediction struct {
	ID                    uint      `gorm:"primaryKey" json:"-"`
	PlayerID              uint      `gorm:"not null;uniqueIndex:idx_player_gameweek" json:"player_id"`
	Gameweek              int       `gorm:"not null;uniqueIndex:idx_player_gameweek" json:"gameweek"`
	PredictedPoints       float64   `json:"predicted_points"`
	ConfidenceScore       float64   `json:"confidence_score"`
	FormScore             float64   `json:"form_score"`
	FixtureDifficulty     float64   `json:"fixture_difficulty"`
	ExpectedGoals         float64   `json:"expected_goals"`
	ExpectedAssists       float64   `json:"expected_assists"`
	CleanSheetProbability float64   `json:"clean_sheet_probability"`
	MinutesProbability    float64   `json:"minutes_probability"`
	PredictionDate        time.Time `json:"prediction_date"`
	ActualPoints          *float64  `json:"actual_points,omitempty"`
}

func (Prediction) TableName() string {
	return "predictions"
}
