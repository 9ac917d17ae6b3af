package predictor

import (
	"math"

	"github.com/fpl-analytics/fpl-analyzer/internal/models"
)

// FormMetrics is the reduction of a player's recent history plus season
// totals. Computed fresh per prediction request, never persisted.
type FormMetrics struct {
	AvgPoints         float64 `json:"avg_points"`
	WeightedAvgPoints float64 `json:"weighted_avg_points"`
	SeasonPPG         float64 `json:"season_ppg"`
	CombinedForm      float64 `json:"combined_form"`
	AvgMinutes        float64 `json:"avg_minutes"`
	Goals             int     `json:"goals"`
	Assists           int     `json:"assists"`
	CleanSheets       int     `json:"clean_sheets"`
	SeasonGoalRate    float64 `json:"season_goal_rate"`
	SeasonAssistRate  float64 `json:"season_assist_rate"`
	Stability         float64 `json:"stability"`
	GamesInWindow     int     `json:"games_in_window"`
}

// FormCalculator reduces recent match history into form metrics.
type FormCalculator struct {
	params ModelParams
}

func NewFormCalculator(params ModelParams) FormCalculator {
	return FormCalculator{params: params}
}

// Compute derives form metrics from a player's history and season totals.
// An empty history yields the zero floor for every metric; this is defined
// behavior, not an error.
func (c FormCalculator) Compute(history []models.MatchRecord, seasonPoints, seasonGames, seasonGoals, seasonAssists int) FormMetrics {
	window := lastN(history, c.params.FormWindow)

	m := FormMetrics{GamesInWindow: len(window)}
	if seasonGames > 0 {
		m.SeasonPPG = float64(seasonPoints) / float64(seasonGames)
		m.SeasonGoalRate = float64(seasonGoals) / float64(seasonGames)
		m.SeasonAssistRate = float64(seasonAssists) / float64(seasonGames)
	}

	if len(window) == 0 {
		return m
	}

	points := make([]float64, len(window))
	var minutesSum float64
	for i, g := range window {
		points[i] = float64(g.TotalPoints)
		minutesSum += float64(g.Minutes)
		m.Goals += g.Goals
		m.Assists += g.Assists
		m.CleanSheets += g.CleanSheets
	}

	m.AvgPoints = mean(points)
	m.WeightedAvgPoints = weightedMean(points)
	m.AvgMinutes = minutesSum / float64(len(window))

	m.CombinedForm = c.params.RecentWeight*m.WeightedAvgPoints + c.params.SeasonWeight*m.SeasonPPG

	// Stability rewards consistency: high-variance scorers of the same mean
	// are penalized.
	m.Stability = clamp01(1 - stddev(points)/math.Max(m.CombinedForm, 1))

	return m
}

// lastN returns the most recent n records, preserving order (oldest first).
func lastN(history []models.MatchRecord, n int) []models.MatchRecord {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// weightedMean weights the most recent value heaviest, with weights 1..n
// normalized to sum to 1 over however many values exist.
func weightedMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum, weightSum float64
	for i, v := range values {
		w := float64(i + 1)
		sum += w * v
		weightSum += w
	}
	return sum / weightSum
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		sq += (v - m) * (v - m)
	}
	return math.Sqrt(sq / float64(len(values)))
}
