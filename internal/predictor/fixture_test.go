package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fpl-analytics/fpl-analyzer/internal/models"
)

func TestEffectiveDifficulty(t *testing.T) {
	model := NewFixtureDifficultyModel(DefaultParams())

	tests := []struct {
		name     string
		fixture  models.FixtureContext
		expected float64
	}{
		{
			name:     "away fixture uses away rating unscaled",
			fixture:  models.FixtureContext{HomeDifficulty: 2, AwayDifficulty: 4, IsHome: false},
			expected: 4.0,
		},
		{
			name:     "home fixture discounted by home advantage",
			fixture:  models.FixtureContext{HomeDifficulty: 4, AwayDifficulty: 2, IsHome: true},
			expected: 3.2,
		},
		{
			name:     "easiest home fixture",
			fixture:  models.FixtureContext{HomeDifficulty: 1, AwayDifficulty: 5, IsHome: true},
			expected: 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, model.Effective(tt.fixture), 1e-9)
		})
	}
}

func TestEffectiveDifficultyDamping(t *testing.T) {
	params := DefaultParams()
	params.DifficultyDamping = 0.5
	model := NewFixtureDifficultyModel(params)

	fx := models.FixtureContext{AwayDifficulty: 4, IsHome: false}
	assert.InDelta(t, 2.0, model.Effective(fx), 1e-9)
}

func TestHasRating(t *testing.T) {
	model := NewFixtureDifficultyModel(DefaultParams())

	assert.True(t, model.HasRating(models.FixtureContext{HomeDifficulty: 3, IsHome: true}))
	assert.True(t, model.HasRating(models.FixtureContext{AwayDifficulty: 5, IsHome: false}))
	assert.False(t, model.HasRating(models.FixtureContext{HomeDifficulty: 0, IsHome: true}))
	assert.False(t, model.HasRating(models.FixtureContext{AwayDifficulty: 6, IsHome: false}))
	// Rating on the wrong side does not count
	assert.False(t, model.HasRating(models.FixtureContext{HomeDifficulty: 3, AwayDifficulty: 0, IsHome: false}))
}
