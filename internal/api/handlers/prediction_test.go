package handlers

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpl-analytics/fpl-analyzer/internal/models"
	"github.com/fpl-analytics/fpl-analyzer/internal/predictor"
	"github.com/fpl-analytics/fpl-analyzer/internal/providers"
	"github.com/fpl-analytics/fpl-analyzer/internal/services"
	"github.com/fpl-analytics/fpl-analyzer/pkg/database"
)

func setupActualPointsRouter(t *testing.T) (*gin.Engine, *services.PredictionStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewConnection(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Player{}, &models.Prediction{}))
	t.Cleanup(func() { _ = db.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	// Cache points at a closed port; the handler path must tolerate that.
	cache := services.NewCacheService(redis.NewClient(&redis.Options{
		Addr:       "127.0.0.1:1",
		MaxRetries: -1,
	}))

	players := services.NewPlayerStore(db)
	predictions := services.NewPredictionStore(db)
	params := predictor.DefaultParams()
	strategy := predictor.NewRuleBasedStrategy(params)
	engine := predictor.NewEngine(params, strategy, log)
	svc := services.NewPredictionService(engine, strategy, players, predictions, cache, log, 1)

	client := providers.NewFPLClient(providers.FPLClientConfig{}, log)
	refresh := services.NewRefreshService(client, players, predictions, cache, log, time.Hour, time.Hour)

	handler := NewPredictionHandler(svc, refresh)
	router := gin.New()
	router.PUT("/predictions/:playerId/:gameweek/actual", handler.AttachActual)
	return router, predictions
}

func putActual(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAttachActualAcceptsZeroPoints(t *testing.T) {
	router, store := setupActualPointsRouter(t)
	require.NoError(t, store.Upsert(&models.Prediction{
		PlayerID: 1, Gameweek: 10, PredictedPoints: 3.2, PredictionDate: time.Now().UTC(),
	}))

	// A benched player's zero is a legitimate outcome, not a missing field.
	w := putActual(router, "/predictions/1/10/actual", `{"actual_points": 0}`)
	assert.Equal(t, http.StatusOK, w.Code)

	got, err := store.Get(1, 10)
	require.NoError(t, err)
	require.NotNil(t, got.ActualPoints)
	assert.Zero(t, *got.ActualPoints)
}

func TestAttachActualRejectsMissingField(t *testing.T) {
	router, store := setupActualPointsRouter(t)
	require.NoError(t, store.Upsert(&models.Prediction{
		PlayerID: 1, Gameweek: 10, PredictionDate: time.Now().UTC(),
	}))

	w := putActual(router, "/predictions/1/10/actual", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	got, err := store.Get(1, 10)
	require.NoError(t, err)
	assert.Nil(t, got.ActualPoints)
}

func TestAttachActualUnknownPrediction(t *testing.T) {
	router, _ := setupActualPointsRouter(t)

	w := putActual(router, "/predictions/42/10/actual", `{"actual_points": 6}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
