package predictor

import (
	"fmt"
	"math"

	"github.com/fpl-analytics/fpl-analyzer/internal/models"
	"github.com/fpl-analytics/fpl-analyzer/pkg/utils"
)

// ScoringInput carries everything a scoring strategy may consume.
type ScoringInput struct {
	Player     *models.Player
	Form       FormMetrics
	Difficulty float64
}

// ScoreBreakdown is a raw point estimate before minutes scaling, together
// with the sub-probabilities behind it. The probability bundle is exposed for
// transparency, not only the scalar.
type ScoreBreakdown struct {
	BasePoints            float64 `json:"base_points"`
	ExpectedGoals         float64 `json:"expected_goals"`
	ExpectedAssists       float64 `json:"expected_assists"`
	CleanSheetProbability float64 `json:"clean_sheet_probability"`
}

// ScoringStrategy turns form and fixture difficulty into a raw point
// estimate. The rule-based and regression variants are interchangeable; the
// engine and optimizer never depend on which one is plugged in.
type ScoringStrategy interface {
	Score(in ScoringInput) (ScoreBreakdown, error)
}

// RuleBasedStrategy scores with hand-tuned weighted sums, dispatching on the
// player's position class.
type RuleBasedStrategy struct {
	params ModelParams
}

func NewRuleBasedStrategy(params ModelParams) *RuleBasedStrategy {
	return &RuleBasedStrategy{params: params}
}

func (s *RuleBasedStrategy) Score(in ScoringInput) (ScoreBreakdown, error) {
	pos := in.Player.Position
	if !pos.IsValid() {
		return ScoreBreakdown{}, fmt.Errorf("%w: unknown position %q", utils.ErrMissingData, pos)
	}

	if pos.IsDefensive() {
		return s.scoreDefensive(pos, in.Form, in.Difficulty), nil
	}
	return s.scoreAttacking(pos, in.Form, in.Difficulty), nil
}

// scoreDefensive handles goalkeepers and defenders: appearance points plus a
// clean-sheet expectation, with attacking-threat terms for defenders.
func (s *RuleBasedStrategy) scoreDefensive(pos models.Position, form FormMetrics, difficulty float64) ScoreBreakdown {
	weights := s.params.PositionWeights[pos]

	csProb := clamp01(math.Max(0, 1-difficulty/5) * form.Stability)
	base := s.params.AppearancePoints + csProb*weights.CleanSheet

	out := ScoreBreakdown{CleanSheetProbability: csProb}
	if pos == models.PositionDefender {
		out.ExpectedGoals = s.eventProbability(form.Goals, form.GamesInWindow, form.SeasonGoalRate, difficulty)
		out.ExpectedAssists = s.eventProbability(form.Assists, form.GamesInWindow, form.SeasonAssistRate, difficulty)
		base += out.ExpectedGoals*weights.Goal + out.ExpectedAssists*weights.Assist
	}
	out.BasePoints = base
	return out
}

// scoreAttacking handles midfielders and forwards: appearance points plus
// goal and assist expectations. Midfielders keep a damped clean-sheet bonus
// via their smaller clean-sheet weight.
func (s *RuleBasedStrategy) scoreAttacking(pos models.Position, form FormMetrics, difficulty float64) ScoreBreakdown {
	weights := s.params.PositionWeights[pos]

	out := ScoreBreakdown{
		ExpectedGoals:   s.eventProbability(form.Goals, form.GamesInWindow, form.SeasonGoalRate, difficulty),
		ExpectedAssists: s.eventProbability(form.Assists, form.GamesInWindow, form.SeasonAssistRate, difficulty),
	}

	base := s.params.AppearancePoints
	base += out.ExpectedGoals * weights.Goal
	base += out.ExpectedAssists * weights.Assist

	if pos == models.PositionMidfielder {
		out.CleanSheetProbability = clamp01(math.Max(0, 1-difficulty/5) * form.Stability)
		base += out.CleanSheetProbability * weights.CleanSheet
	}

	out.BasePoints = base
	return out
}

// eventProbability blends the recent-window rate with the season-long rate,
// then scales by fixture ease.
func (s *RuleBasedStrategy) eventProbability(recentCount, gamesInWindow int, seasonRate, difficulty float64) float64 {
	recentRate := 0.0
	if gamesInWindow > 0 {
		recentRate = float64(recentCount) / float64(gamesInWindow)
	}
	blended := s.params.AttackRecentBlend*recentRate + (1-s.params.AttackRecentBlend)*seasonRate
	return clamp01(blended * math.Max(0, 1-difficulty/5))
}
