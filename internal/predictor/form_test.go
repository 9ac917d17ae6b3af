package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fpl-analytics/fpl-analyzer/internal/models"
)

func historyOf(points ...int) []models.MatchRecord {
	records := make([]models.MatchRecord, len(points))
	for i, p := range points {
		records[i] = models.MatchRecord{
			Round:       i + 1,
			Minutes:     90,
			TotalPoints: p,
		}
	}
	return records
}

func TestComputeEmptyHistory(t *testing.T) {
	calc := NewFormCalculator(DefaultParams())

	m := calc.Compute(nil, 40, 10, 4, 2)

	assert.Zero(t, m.AvgPoints)
	assert.Zero(t, m.WeightedAvgPoints)
	assert.Zero(t, m.CombinedForm)
	assert.Zero(t, m.Stability)
	assert.Zero(t, m.GamesInWindow)
	// Season rates survive without history
	assert.InDelta(t, 4.0, m.SeasonPPG, 1e-9)
	assert.InDelta(t, 0.4, m.SeasonGoalRate, 1e-9)
	assert.InDelta(t, 0.2, m.SeasonAssistRate, 1e-9)
}

func TestComputeWindowTruncation(t *testing.T) {
	params := DefaultParams()
	params.FormWindow = 3
	calc := NewFormCalculator(params)

	// Eight games, only the last three should count.
	m := calc.Compute(historyOf(0, 0, 0, 0, 0, 6, 6, 6), 18, 8, 0, 0)

	assert.Equal(t, 3, m.GamesInWindow)
	assert.InDelta(t, 6.0, m.AvgPoints, 1e-9)
	assert.InDelta(t, 6.0, m.WeightedAvgPoints, 1e-9)
}

func TestComputeWeightedMeanFavorsRecent(t *testing.T) {
	calc := NewFormCalculator(DefaultParams())

	rising := calc.Compute(historyOf(2, 4, 6, 8, 10), 30, 5, 0, 0)
	falling := calc.Compute(historyOf(10, 8, 6, 4, 2), 30, 5, 0, 0)

	assert.InDelta(t, rising.AvgPoints, falling.AvgPoints, 1e-9)
	assert.Greater(t, rising.WeightedAvgPoints, falling.WeightedAvgPoints)
	assert.Greater(t, rising.CombinedForm, falling.CombinedForm)
}

func TestComputeCombinedFormBlend(t *testing.T) {
	calc := NewFormCalculator(DefaultParams())

	// Constant 6-point games, season PPG of 3: 0.6*6 + 0.4*3 = 4.8.
	m := calc.Compute(historyOf(6, 6, 6, 6, 6), 30, 10, 0, 0)

	assert.InDelta(t, 4.8, m.CombinedForm, 1e-9)
}

func TestComputeStability(t *testing.T) {
	calc := NewFormCalculator(DefaultParams())

	steady := calc.Compute(historyOf(5, 5, 5, 5, 5), 25, 5, 0, 0)
	volatile := calc.Compute(historyOf(0, 13, 0, 12, 0), 25, 5, 0, 0)

	// Identical season totals, but the constant scorer is maximally stable.
	assert.InDelta(t, 1.0, steady.Stability, 1e-9)
	assert.Less(t, volatile.Stability, steady.Stability)
	assert.GreaterOrEqual(t, volatile.Stability, 0.0)
}

func TestComputeEventTotalsInWindow(t *testing.T) {
	calc := NewFormCalculator(DefaultParams())

	history := []models.MatchRecord{
		{Minutes: 90, Goals: 1, Assists: 0, CleanSheets: 1, TotalPoints: 9},
		{Minutes: 60, Goals: 0, Assists: 2, CleanSheets: 0, TotalPoints: 8},
		{Minutes: 90, Goals: 2, Assists: 0, CleanSheets: 1, TotalPoints: 13},
	}
	m := calc.Compute(history, 30, 3, 3, 2)

	assert.Equal(t, 3, m.Goals)
	assert.Equal(t, 2, m.Assists)
	assert.Equal(t, 2, m.CleanSheets)
	assert.InDelta(t, 80.0, m.AvgMinutes, 1e-9)
}

func TestStddev(t *testing.T) {
	assert.Zero(t, stddev(nil))
	assert.Zero(t, stddev([]float64{5}))
	assert.InDelta(t, 2.0, stddev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
}
