package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateBlend(t *testing.T) {
	est := NewConfidenceEstimator(DefaultParams())

	// Full minutes, perfectly stable, difficulty 2.5:
	// 0.4*1 + 0.4*1 + 0.2*(1-0.5) = 0.9.
	form := FormMetrics{AvgMinutes: 90, Stability: 1.0}
	assert.InDelta(t, 0.9, est.Estimate(form, 2.5), 1e-9)
}

func TestEstimateClampedOnDegenerateInputs(t *testing.T) {
	est := NewConfidenceEstimator(DefaultParams())

	tests := []struct {
		name       string
		form       FormMetrics
		difficulty float64
	}{
		{"zero everything", FormMetrics{}, 0},
		{"no minutes hardest fixture", FormMetrics{Stability: 0}, 5},
		{"difficulty beyond the scale", FormMetrics{AvgMinutes: 90, Stability: 1}, 12},
		{"minutes above a full match", FormMetrics{AvgMinutes: 120, Stability: 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := est.Estimate(tt.form, tt.difficulty)
			assert.GreaterOrEqual(t, c, 0.0)
			assert.LessOrEqual(t, c, 1.0)
		})
	}
}

func TestEstimateMonotonicInDifficulty(t *testing.T) {
	est := NewConfidenceEstimator(DefaultParams())
	form := FormMetrics{AvgMinutes: 80, Stability: 0.7}

	easy := est.Estimate(form, 2)
	hard := est.Estimate(form, 4)
	assert.Greater(t, easy, hard)
}
