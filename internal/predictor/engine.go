package predictor

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fpl-analytics/fpl-analyzer/internal/models"
	"github.com/fpl-analytics/fpl-analyzer/pkg/logger"
	"github.com/fpl-analytics/fpl-analyzer/pkg/utils"
)

// PredictionInput is one unit of work for the engine. A nil Fixture triggers
// the degraded form-only path rather than a failure.
type PredictionInput struct {
	Player   *models.Player
	Fixture  *models.FixtureContext
	Gameweek int
}

// Engine orchestrates form, fixture difficulty, position scoring and
// confidence into one Prediction per (player, gameweek). It holds no mutable
// state: every call is a pure function of its inputs aside from the clock.
type Engine struct {
	params     ModelParams
	strategy   ScoringStrategy
	form       FormCalculator
	fixtures   FixtureDifficultyModel
	confidence ConfidenceEstimator
	logger     *logrus.Logger
	now        func() time.Time
}

func NewEngine(params ModelParams, strategy ScoringStrategy, logger *logrus.Logger) *Engine {
	return &Engine{
		params:     params,
		strategy:   strategy,
		form:       NewFormCalculator(params),
		fixtures:   NewFixtureDifficultyModel(params),
		confidence: NewConfidenceEstimator(params),
		logger:     logger,
		now:        time.Now,
	}
}

// GeneratePrediction produces the prediction for one (player, gameweek).
// The caller is responsible for persisting it keyed by that pair.
func (e *Engine) GeneratePrediction(in PredictionInput) (*models.Prediction, error) {
	p := in.Player
	if p == nil {
		return nil, fmt.Errorf("%w: nil player", utils.ErrMissingData)
	}
	if !p.Position.IsValid() {
		return nil, fmt.Errorf("%w: player %d has unknown position %q", utils.ErrMissingData, p.ID, p.Position)
	}
	if p.Price <= 0 {
		return nil, fmt.Errorf("%w: player %d has no price", utils.ErrMissingData, p.ID)
	}

	degraded := false
	var difficulty float64
	switch {
	case in.Fixture == nil:
		// Form-only estimate at neutral difficulty, flagged through a weaker
		// confidence score.
		degraded = true
		difficulty = e.params.NeutralDifficulty
	case !e.fixtures.HasRating(*in.Fixture):
		return nil, fmt.Errorf("%w: player %d fixture has no difficulty rating", utils.ErrMissingData, p.ID)
	default:
		difficulty = e.fixtures.Effective(*in.Fixture)
	}

	form := e.form.Compute(p.RecentHistory(), p.TotalPoints, p.SeasonGames, p.SeasonGoals, p.SeasonAssists)

	breakdown, err := e.strategy.Score(ScoringInput{Player: p, Form: form, Difficulty: difficulty})
	if err != nil {
		return nil, err
	}

	basePoints := e.reweightEstablished(breakdown.BasePoints, p)

	minutesProb := clamp01(form.AvgMinutes / 90)
	predicted := math.Max(0, basePoints*minutesProb)

	// Confidence is independent of the established-performer reweighting.
	confidence := e.confidence.Estimate(form, difficulty)
	if degraded {
		confidence = clamp01(confidence * e.params.DegradedConfidenceScale)
	}

	return &models.Prediction{
		PlayerID:              p.ID,
		Gameweek:              in.Gameweek,
		PredictedPoints:       predicted,
		ConfidenceScore:       confidence,
		FormScore:             form.Stability,
		FixtureDifficulty:     difficulty,
		ExpectedGoals:         breakdown.ExpectedGoals,
		ExpectedAssists:       breakdown.ExpectedAssists,
		CleanSheetProbability: breakdown.CleanSheetProbability,
		MinutesProbability:    minutesProb,
		PredictionDate:        e.now().UTC(),
	}, nil
}

// reweightEstablished damps recency bias for proven performers: once a player
// has enough season games at a high points-per-game rate, the estimate is
// blended toward their season average.
func (e *Engine) reweightEstablished(basePoints float64, p *models.Player) float64 {
	if p.SeasonGames < e.params.EstablishedMinGames {
		return basePoints
	}
	ppg := float64(p.TotalPoints) / float64(p.SeasonGames)
	if ppg < e.params.EstablishedMinPPG {
		return basePoints
	}
	return basePoints*(1-e.params.SeasonBlend) + ppg*e.params.SeasonBlend
}

// GenerateBatch computes predictions for independent players concurrently.
// Per-player failures are logged and skipped so one bad record does not abort
// the batch; the skip count is returned alongside the successes.
func (e *Engine) GenerateBatch(ctx context.Context, inputs []PredictionInput, workers int) ([]models.Prediction, int) {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan PredictionInput)
	results := make(chan *models.Prediction)
	var skipped atomic.Int64

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for in := range jobs {
				pred, err := e.GeneratePrediction(in)
				if err != nil {
					skipped.Add(1)
					entry := e.logger.WithField("gameweek", in.Gameweek)
					if in.Player != nil {
						entry = logger.WithPlayerContext(e.logger, in.Player.ID, in.Gameweek)
					}
					entry.Warnf("Skipping prediction: %v", err)
					continue
				}
				results <- pred
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, in := range inputs {
			select {
			case <-ctx.Done():
				return
			case jobs <- in:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	predictions := make([]models.Prediction, 0, len(inputs))
	for pred := range results {
		predictions = append(predictions, *pred)
	}

	return predictions, int(skipped.Load())
}
