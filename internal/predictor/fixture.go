package predictor

import "github.com/fpl-analytics/fpl-analyzer/internal/models"

// FixtureDifficultyModel converts a fixture's raw difficulty rating and
// home/away status into an effective difficulty scalar. Output is a relative
// adjustment only; multipliers can push it outside the raw 1-5 scale and
// callers must not assume bounded output.
type FixtureDifficultyModel struct {
	params ModelParams
}

func NewFixtureDifficultyModel(params ModelParams) FixtureDifficultyModel {
	return FixtureDifficultyModel{params: params}
}

// Effective returns the difficulty of the fixture for the player's side.
// Home fixtures are discounted by the home-advantage multiplier.
func (m FixtureDifficultyModel) Effective(fx models.FixtureContext) float64 {
	base := float64(fx.AwayDifficulty)
	multiplier := 1.0
	if fx.IsHome {
		base = float64(fx.HomeDifficulty)
		multiplier = m.params.HomeAdvantage
	}
	return base * multiplier * m.params.DifficultyDamping
}

// HasRating reports whether the fixture carries a usable difficulty rating
// for the player's side. A missing rating is a hard failure upstream, not
// something to paper over with a default.
func (m FixtureDifficultyModel) HasRating(fx models.FixtureContext) bool {
	d := fx.AwayDifficulty
	if fx.IsHome {
		d = fx.HomeDifficulty
	}
	return d >= 1 && d <= 5
}
