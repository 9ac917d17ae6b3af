package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/fpl-analytics/fpl-analyzer/internal/models"
	"github.com/fpl-analytics/fpl-analyzer/internal/providers"
)

// RefreshService keeps the local player store in sync with the FPL API on a
// schedule: periodic full refreshes plus a nightly prediction cleanup.
type RefreshService struct {
	client        *providers.FPLClient
	players       *PlayerStore
	predictions   *PredictionStore
	cache         *CacheService
	logger        *logrus.Logger
	cron          *cron.Cron
	mu            sync.Mutex
	isRunning     bool
	fetchInterval time.Duration
	retention     time.Duration
}

func NewRefreshService(
	client *providers.FPLClient,
	players *PlayerStore,
	predictions *PredictionStore,
	cache *CacheService,
	logger *logrus.Logger,
	fetchInterval time.Duration,
	retention time.Duration,
) *RefreshService {
	return &RefreshService{
		client:        client,
		players:       players,
		predictions:   predictions,
		cache:         cache,
		logger:        logger,
		cron:          cron.New(),
		fetchInterval: fetchInterval,
		retention:     retention,
	}
}

// Start begins the scheduled refresh jobs.
func (s *RefreshService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("refresh service is already running")
	}

	schedule := fmt.Sprintf("@every %s", s.fetchInterval.String())
	if _, err := s.cron.AddFunc(schedule, s.scheduledRefresh); err != nil {
		return fmt.Errorf("failed to schedule data refresh: %w", err)
	}

	if _, err := s.cron.AddFunc("0 3 * * *", s.cleanupOldPredictions); err != nil {
		return fmt.Errorf("failed to schedule cleanup: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	s.logger.Info("Refresh service started")
	return nil
}

// Stop halts the scheduled jobs and waits for any running job to finish.
func (s *RefreshService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.logger.Info("Refresh service stopped")
}

func (s *RefreshService) scheduledRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if _, err := s.RefreshNow(ctx); err != nil {
		s.logger.Errorf("Scheduled data refresh failed: %v", err)
	}
}

// RefreshNow pulls bootstrap, fixtures and per-player histories from the FPL
// API and replaces the stored snapshots. A failed history fetch downgrades
// that player to an empty history instead of aborting the whole refresh.
func (s *RefreshService) RefreshNow(ctx context.Context) (int, error) {
	s.logger.Info("Starting FPL data refresh")

	bootstrap, err := s.client.GetBootstrap(ctx)
	if err != nil {
		return 0, err
	}

	fixtures, err := s.client.GetFixtures(ctx)
	if err != nil {
		return 0, err
	}

	teams := make(map[uint]providers.Team, len(bootstrap.Teams))
	for _, t := range bootstrap.Teams {
		teams[t.ID] = t
	}

	now := time.Now().UTC()
	players := make([]models.Player, 0, len(bootstrap.Elements))
	for _, el := range bootstrap.Elements {
		summary, err := s.client.GetPlayerSummary(ctx, el.ID)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			s.logger.WithField("player_id", el.ID).Warnf("Failed to fetch history, storing without it: %v", err)
			summary = &providers.ElementSummary{}
		}
		players = append(players, providers.ToPlayer(el, teams, summary.History, fixtures, now))
	}

	if err := s.players.UpsertBatch(players); err != nil {
		return 0, err
	}

	gameweek := bootstrap.CurrentGameweek()
	s.cache.SetWithRetry(ctx, GameweekCacheKey(), gameweek, s.fetchInterval, 3)
	if err := s.cache.Delete(ctx, PlayersCacheKey()); err != nil {
		s.logger.Warnf("Failed to invalidate player cache: %v", err)
	}

	s.logger.WithFields(logrus.Fields{
		"players":  len(players),
		"gameweek": gameweek,
	}).Info("FPL data refresh complete")

	return len(players), nil
}

// CurrentGameweek returns the cached current gameweek, falling back to a
// bootstrap fetch.
func (s *RefreshService) CurrentGameweek(ctx context.Context) (int, error) {
	var gameweek int
	if err := s.cache.Get(ctx, GameweekCacheKey(), &gameweek); err == nil && gameweek > 0 {
		return gameweek, nil
	}

	bootstrap, err := s.client.GetBootstrap(ctx)
	if err != nil {
		return 0, err
	}
	gameweek = bootstrap.CurrentGameweek()
	s.cache.SetWithRetry(ctx, GameweekCacheKey(), gameweek, s.fetchInterval, 3)
	return gameweek, nil
}

func (s *RefreshService) cleanupOldPredictions() {
	cutoff := time.Now().UTC().Add(-s.retention)
	deleted, err := s.predictions.DeleteBefore(cutoff)
	if err != nil {
		s.logger.Errorf("Prediction cleanup failed: %v", err)
		return
	}
	s.logger.WithField("deleted", deleted).Info("Old predictions cleaned up")
}
