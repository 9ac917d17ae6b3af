package predictor

import (
	"fmt"
	"math"
	"sync"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/linear_models"

	"github.com/fpl-analytics/fpl-analyzer/internal/models"
	"github.com/fpl-analytics/fpl-analyzer/pkg/utils"
)

var regressionFeatures = []string{
	"form",
	"avg_minutes",
	"avg_goals",
	"avg_assists",
	"avg_clean_sheets",
	"price",
	"home_ratio",
	"avg_difficulty",
}

// RegressionStrategy is the statistical-learning scoring variant: a linear
// model over form features, trained on the element pool's season output. It
// must be fitted before scoring; until then Score returns ErrUntrainedModel.
//
// The model replaces only the raw point estimate. The probability bundle
// still comes from the rule-based formulas so downstream consumers see the
// same breakdown fields either way.
type RegressionStrategy struct {
	mu      sync.RWMutex
	params  ModelParams
	model   *linear_models.LinearRegression
	trained bool
	rules   *RuleBasedStrategy
}

func NewRegressionStrategy(params ModelParams) *RegressionStrategy {
	return &RegressionStrategy{
		params: params,
		rules:  NewRuleBasedStrategy(params),
	}
}

// Fit trains the linear model on players who have actually played this
// season, targeting their points-per-game rate.
func (s *RegressionStrategy) Fit(players []models.Player) error {
	var rows [][]float64
	var labels []float64
	for i := range players {
		p := &players[i]
		if p.TotalPoints <= 0 || p.SeasonGames <= 0 {
			continue
		}
		rows = append(rows, featureVector(p))
		labels = append(labels, float64(p.TotalPoints)/float64(p.SeasonGames))
	}

	if len(rows) <= len(regressionFeatures) {
		return fmt.Errorf("%w: %d usable training samples", utils.ErrMissingData, len(rows))
	}

	inst, err := buildInstances(rows, labels)
	if err != nil {
		return fmt.Errorf("failed to build training set: %w", err)
	}

	model := linear_models.NewLinearRegression()
	if err := model.Fit(inst); err != nil {
		return fmt.Errorf("failed to fit linear model: %w", err)
	}

	s.mu.Lock()
	s.model = model
	s.trained = true
	s.mu.Unlock()
	return nil
}

func (s *RegressionStrategy) Score(in ScoringInput) (ScoreBreakdown, error) {
	s.mu.RLock()
	model, trained := s.model, s.trained
	s.mu.RUnlock()

	if !trained {
		return ScoreBreakdown{}, utils.ErrUntrainedModel
	}

	// Probability bundle from the rule-based formulas.
	out, err := s.rules.Score(in)
	if err != nil {
		return ScoreBreakdown{}, err
	}

	inst, err := buildInstances([][]float64{featureVector(in.Player)}, []float64{0})
	if err != nil {
		return ScoreBreakdown{}, fmt.Errorf("failed to build feature row: %w", err)
	}

	predicted, err := model.Predict(inst)
	if err != nil {
		return ScoreBreakdown{}, fmt.Errorf("model prediction failed: %w", err)
	}

	specs := base.ResolveAttributes(predicted, predicted.AllClassAttributes())
	if len(specs) == 0 {
		return ScoreBreakdown{}, fmt.Errorf("model prediction returned no class attribute")
	}
	out.BasePoints = math.Max(0, base.UnpackBytesToFloat(predicted.Get(specs[0], 0)))
	return out, nil
}

// featureVector mirrors the rule-based inputs: recent-window averages, price
// and the fixture lookahead profile.
func featureVector(p *models.Player) []float64 {
	window := lastN(p.RecentHistory(), 5)

	var minutes, goals, assists, cleanSheets float64
	for _, g := range window {
		minutes += float64(g.Minutes)
		goals += float64(g.Goals)
		assists += float64(g.Assists)
		cleanSheets += float64(g.CleanSheets)
	}
	if n := float64(len(window)); n > 0 {
		minutes /= n
		goals /= n
		assists /= n
		cleanSheets /= n
	}

	fixtures := p.Fixtures.Data()
	homeRatio := 0.0
	avgDifficulty := 3.0
	if len(fixtures) > 0 {
		var homes, difficulty float64
		for _, fx := range fixtures {
			if fx.IsHome {
				homes++
				difficulty += float64(fx.HomeDifficulty)
			} else {
				difficulty += float64(fx.AwayDifficulty)
			}
		}
		homeRatio = homes / float64(len(fixtures))
		avgDifficulty = difficulty / float64(len(fixtures))
	}

	return []float64{
		p.Form,
		minutes,
		goals,
		assists,
		cleanSheets,
		p.Price,
		homeRatio,
		avgDifficulty,
	}
}

// buildInstances packs feature rows and labels into a golearn grid with the
// label as the class attribute.
func buildInstances(rows [][]float64, labels []float64) (*base.DenseInstances, error) {
	inst := base.NewDenseInstances()

	specs := make([]base.AttributeSpec, 0, len(regressionFeatures)+1)
	for _, name := range regressionFeatures {
		specs = append(specs, inst.AddAttribute(base.NewFloatAttribute(name)))
	}
	classAttr := base.NewFloatAttribute("points_per_game")
	specs = append(specs, inst.AddAttribute(classAttr))
	if err := inst.AddClassAttribute(classAttr); err != nil {
		return nil, err
	}

	if err := inst.Extend(len(rows)); err != nil {
		return nil, err
	}
	for r, row := range rows {
		for c, v := range row {
			inst.Set(specs[c], r, base.PackFloatToBytes(v))
		}
		inst.Set(specs[len(row)], r, base.PackFloatToBytes(labels[r]))
	}
	return inst, nil
}
