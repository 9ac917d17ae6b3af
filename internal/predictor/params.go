package predictor

import "github.com/fpl-analytics/fpl-analyzer/internal/models"

// PositionWeights are the FPL point values per event for one position class.
// Configuration data, not logic.
type PositionWeights struct {
	CleanSheet  float64
	Goal        float64
	Assist      float64
	Save        float64
	PenaltySave float64
}

// ConfidenceWeights must sum to 1.
type ConfidenceWeights struct {
	Minutes float64
	Form    float64
	Fixture float64
}

// ModelParams is the immutable tuning surface of the prediction engine. Build
// one with DefaultParams and pass it to each component at construction.
type ModelParams struct {
	// Form
	FormWindow   int     // recent games considered
	RecentWeight float64 // share of combined form from the recent window
	SeasonWeight float64 // share from season points-per-game

	// Fixture difficulty
	HomeAdvantage     float64 // multiplier applied to home fixtures, < 1.0
	DifficultyDamping float64 // overall sensitivity multiplier
	NeutralDifficulty float64 // assumed difficulty when no fixture exists

	// Scoring
	AppearancePoints  float64
	AttackRecentBlend float64 // share of goal/assist probability from recent rates
	PositionWeights   map[models.Position]PositionWeights

	// Established-performer damping: blend toward season PPG once a player has
	// proven season-long output.
	EstablishedMinGames int
	EstablishedMinPPG   float64
	SeasonBlend         float64

	// Confidence
	Confidence              ConfidenceWeights
	DegradedConfidenceScale float64 // applied when predicting without a fixture

	// Transfers
	PricePenalty      float64
	MaxPlayersPerTeam int
}

// DefaultParams returns the tuned defaults. Callers may override individual
// fields before handing the struct to NewEngine.
func DefaultParams() ModelParams {
	return ModelParams{
		FormWindow:   5,
		RecentWeight: 0.6,
		SeasonWeight: 0.4,

		HomeAdvantage:     0.8,
		DifficultyDamping: 1.0,
		NeutralDifficulty: 3.0,

		AppearancePoints:  2.0,
		AttackRecentBlend: 0.7,
		PositionWeights: map[models.Position]PositionWeights{
			models.PositionGoalkeeper: {CleanSheet: 4, Save: 0.33, PenaltySave: 5},
			models.PositionDefender:   {CleanSheet: 4, Goal: 6, Assist: 3},
			models.PositionMidfielder: {CleanSheet: 1, Goal: 5, Assist: 3},
			models.PositionForward:    {Goal: 4, Assist: 3},
		},

		EstablishedMinGames: 10,
		EstablishedMinPPG:   4.0,
		SeasonBlend:         0.3,

		Confidence: ConfidenceWeights{
			Minutes: 0.4,
			Form:    0.4,
			Fixture: 0.2,
		},
		DegradedConfidenceScale: 0.5,

		PricePenalty:      0.5,
		MaxPlayersPerTeam: 3,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
