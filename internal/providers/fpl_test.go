package providers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *FPLClient {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewFPLClient(FPLClientConfig{
		BaseURL:        serverURL,
		RequestsPerSec: 100,
	}, log)
}

func TestGetBootstrap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bootstrap-static/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"events": [{"id": 1, "finished": true}, {"id": 2, "is_current": true}],
			"teams": [{"id": 1, "name": "Arsenal", "short_name": "ARS"}],
			"elements": [{"id": 42, "web_name": "Saka", "team": 1, "element_type": 3, "now_cost": 92, "form": "6.4"}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	bootstrap, err := client.GetBootstrap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, bootstrap.CurrentGameweek())
	require.Len(t, bootstrap.Elements, 1)
	assert.Equal(t, "Saka", bootstrap.Elements[0].WebName)
	assert.Equal(t, 92, bootstrap.Elements[0].NowCost)
}

func TestGetPlayerSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/element-summary/42/", r.URL.Path)
		_, _ = w.Write([]byte(`{"history": [{"element": 42, "round": 1, "minutes": 90, "total_points": 8}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	summary, err := client.GetPlayerSummary(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, summary.History, 1)
	assert.Equal(t, 8, summary.History[0].TotalPoints)
}

func TestGetEntryPicks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/entry/7/event/10/picks/", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"picks": [{"element": 42, "position": 1, "is_captain": true}],
			"entry_history": {"bank": 5, "value": 1003}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	picks, err := client.GetEntryPicks(context.Background(), 7, 10)
	require.NoError(t, err)
	require.Len(t, picks.Picks, 1)
	assert.True(t, picks.Picks[0].IsCaptain)
	assert.Equal(t, 5, picks.EntryHistory.Bank)
}

func TestGetJSONNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GetFixtures(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestCircuitBreakerTripsOnRepeatedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = client.GetFixtures(ctx)
	}

	// Breaker is open: the request fails without reaching the server.
	requests := 0
	server.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	})
	_, err := client.GetFixtures(ctx)
	require.Error(t, err)
	assert.Zero(t, requests)
}

func TestGetJSONDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GetBootstrap(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
