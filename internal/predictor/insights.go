package predictor

import (
	"github.com/fpl-analytics/fpl-analyzer/internal/models"
)

// PlayerInsights is a presentation-friendly digest of a player's outlook.
type PlayerInsights struct {
	PlayerID        uint                    `json:"player_id"`
	Name            string                  `json:"name"`
	Position        models.Position         `json:"position"`
	Price           float64                 `json:"price"`
	PredictedPoints float64                 `json:"predicted_points"`
	MinutesTrend    string                  `json:"minutes_trend"`
	RotationRisk    string                  `json:"rotation_risk"`
	FormTrend       string                  `json:"form_trend"`
	ValueScore      float64                 `json:"value_score"`
	Fixtures        []models.FixtureContext `json:"upcoming_fixtures"`
}

// minutesTrendThreshold: below this stddev of recent minutes a player's role
// is considered settled.
const (
	minutesTrendThreshold = 15.0
	rotationRiskMinutes   = 60.0
	formTrendThreshold    = 5.0
)

// BuildInsights derives qualitative insight labels from a player's recent
// minutes and the prediction already computed for them.
func BuildInsights(p *models.Player, predictedPoints float64) PlayerInsights {
	window := lastN(p.RecentHistory(), 5)

	minutes := make([]float64, len(window))
	for i, g := range window {
		minutes[i] = float64(g.Minutes)
	}

	minutesTrend := "irregular"
	if len(minutes) > 0 && stddev(minutes) < minutesTrendThreshold {
		minutesTrend = "consistent"
	}

	rotationRisk := "low"
	if len(minutes) == 0 || mean(minutes) < rotationRiskMinutes {
		rotationRisk = "high"
	}

	formTrend := "declining"
	if p.Form > formTrendThreshold {
		formTrend = "improving"
	}

	valueScore := 0.0
	if p.Price > 0 {
		valueScore = predictedPoints / p.Price
	}

	return PlayerInsights{
		PlayerID:        p.ID,
		Name:            p.Name,
		Position:        p.Position,
		Price:           p.Price,
		PredictedPoints: predictedPoints,
		MinutesTrend:    minutesTrend,
		RotationRisk:    rotationRisk,
		FormTrend:       formTrend,
		ValueScore:      valueScore,
		Fixtures:        p.Fixtures.Data(),
	}
}
