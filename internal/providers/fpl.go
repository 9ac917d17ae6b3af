package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/fpl-analytics/fpl-analyzer/pkg/logger"
)

// FPLClient talks to the official FPL API. All requests share a rate limiter
// and a circuit breaker so a flapping upstream trips fast instead of piling
// up timeouts.
type FPLClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
}

type FPLClientConfig struct {
	BaseURL          string
	Timeout          time.Duration
	RequestsPerSec   int
	BreakerThreshold int
}

func NewFPLClient(cfg FPLClientConfig, log *logrus.Logger) *FPLClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://fantasy.premierleague.com/api"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = 5
	}

	settings := gobreaker.Settings{
		Name:        "fpl-api",
		MaxRequests: uint32(cfg.BreakerThreshold),
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithComponent(log, "circuit_breaker").WithFields(logrus.Fields{
				"service": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &FPLClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		userAgent:  "fpl-analyzer/1.0",
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.RequestsPerSec),
		breaker:    gobreaker.NewCircuitBreaker(settings),
		logger:     log,
	}
}

// GetBootstrap fetches the full static payload: events, teams, element types
// and every player's season totals.
func (c *FPLClient) GetBootstrap(ctx context.Context) (*Bootstrap, error) {
	var out Bootstrap
	if err := c.getJSON(ctx, "/bootstrap-static/", &out); err != nil {
		return nil, fmt.Errorf("failed to fetch bootstrap data: %w", err)
	}
	return &out, nil
}

// GetFixtures fetches all fixtures for the season with per-side difficulty
// ratings.
func (c *FPLClient) GetFixtures(ctx context.Context) ([]Fixture, error) {
	var out []Fixture
	if err := c.getJSON(ctx, "/fixtures/", &out); err != nil {
		return nil, fmt.Errorf("failed to fetch fixtures: %w", err)
	}
	return out, nil
}

// GetPlayerSummary fetches the per-match history for one element.
func (c *FPLClient) GetPlayerSummary(ctx context.Context, elementID uint) (*ElementSummary, error) {
	var out ElementSummary
	if err := c.getJSON(ctx, fmt.Sprintf("/element-summary/%d/", elementID), &out); err != nil {
		return nil, fmt.Errorf("failed to fetch summary for element %d: %w", elementID, err)
	}
	return &out, nil
}

// GetEntry fetches a manager's team overview.
func (c *FPLClient) GetEntry(ctx context.Context, entryID uint) (*Entry, error) {
	var out Entry
	if err := c.getJSON(ctx, fmt.Sprintf("/entry/%d/", entryID), &out); err != nil {
		return nil, fmt.Errorf("failed to fetch entry %d: %w", entryID, err)
	}
	return &out, nil
}

// GetEntryPicks fetches a manager's squad picks for one gameweek.
func (c *FPLClient) GetEntryPicks(ctx context.Context, entryID uint, gameweek int) (*EntryPicks, error) {
	var out EntryPicks
	path := fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, gameweek)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch picks for entry %d gameweek %d: %w", entryID, gameweek, err)
	}
	return &out, nil
}

func (c *FPLClient) getJSON(ctx context.Context, path string, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("GET %s returned status %d", path, resp.StatusCode)
		}
		return data, nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body.([]byte), dest); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
