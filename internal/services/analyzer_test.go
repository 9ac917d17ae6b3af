package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpl-analytics/fpl-analyzer/internal/optimizer"
	"github.com/fpl-analytics/fpl-analyzer/internal/predictor"
	"github.com/fpl-analytics/fpl-analyzer/internal/providers"
)

func newTestAnalyzer(t *testing.T, fplURL string) *TeamAnalyzer {
	t.Helper()
	db := testDB(t)

	log := logrus.New()
	log.SetOutput(io.Discard)
	cache := unreachableCache()

	players := NewPlayerStore(db)
	predictions := NewPredictionStore(db)
	seedPlayers(t, players)

	params := predictor.DefaultParams()
	strategy := predictor.NewRuleBasedStrategy(params)
	engine := predictor.NewEngine(params, strategy, log)
	predictionService := NewPredictionService(engine, strategy, players, predictions, cache, log, 2)

	client := providers.NewFPLClient(providers.FPLClientConfig{
		BaseURL:        fplURL,
		RequestsPerSec: 100,
	}, log)
	refresh := NewRefreshService(client, players, predictions, cache, log, time.Hour, 720*time.Hour)
	opt := optimizer.NewOptimizer(params.PricePenalty, log)

	return NewTeamAnalyzer(client, refresh, predictionService, players, predictions, cache, opt, log, 3)
}

func TestAnalyzeTeam(t *testing.T) {
	fpl := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bootstrap-static/":
			_, _ = w.Write([]byte(`{"events": [{"id": 9, "finished": true}, {"id": 10, "is_current": true}]}`))
		case "/entry/7/":
			_, _ = w.Write([]byte(`{"id": 7, "name": "Test XI", "summary_overall_points": 512, "summary_overall_rank": 90210}`))
		case "/entry/7/event/10/picks/":
			_, _ = w.Write([]byte(`{
				"picks": [{"element": 1, "position": 1}, {"element": 2, "position": 2}, {"element": 3, "position": 3}],
				"entry_history": {"bank": 12, "value": 1000}
			}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer fpl.Close()

	analyzer := newTestAnalyzer(t, fpl.URL)

	result, err := analyzer.AnalyzeTeam(context.Background(), 7, 1)
	require.NoError(t, err)

	assert.Equal(t, 10, result.Gameweek)
	assert.Equal(t, "Test XI", result.TeamStatus.Name)
	assert.Equal(t, 512, result.TeamStatus.OverallPoints)
	// Bank arrives in tenths of a million.
	assert.InDelta(t, 1.2, result.TeamStatus.BankBalance, 1e-9)

	require.Len(t, result.CurrentSquad, 3)
	byID := make(map[uint]bool, len(result.CurrentSquad))
	for _, sp := range result.CurrentSquad {
		byID[sp.Player.ID] = sp.HasPrediction
		if sp.HasPrediction {
			assert.Greater(t, sp.PredictedPoints, 0.0)
		} else {
			assert.Zero(t, sp.PredictedPoints)
		}
	}
	// The priceless player is skipped by the engine; the squad shows it.
	assert.True(t, byID[1])
	assert.True(t, byID[2])
	assert.False(t, byID[3])
	assert.Equal(t, 1, result.SkippedPlayers)

	// The whole predicted pool is owned, so there is nothing to suggest.
	assert.Empty(t, result.Suggestions)

	require.Len(t, result.CaptainPicks, 3)
	assert.True(t, result.CaptainPicks[0].HasPrediction)
	assert.GreaterOrEqual(t, result.CaptainPicks[0].PredictedPoints, result.CaptainPicks[1].PredictedPoints)

	assert.False(t, result.GeneratedAt.IsZero())
}

func TestAnalyzeTeamUpstreamFailure(t *testing.T) {
	fpl := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer fpl.Close()

	analyzer := newTestAnalyzer(t, fpl.URL)

	_, err := analyzer.AnalyzeTeam(context.Background(), 7, 1)
	require.Error(t, err)
}
