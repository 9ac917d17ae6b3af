package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fpl-analytics/fpl-analyzer/internal/models"
	"github.com/fpl-analytics/fpl-analyzer/internal/optimizer"
	"github.com/fpl-analytics/fpl-analyzer/internal/providers"
)

// TeamStatus summarizes the manager's entry.
type TeamStatus struct {
	Name          string  `json:"name"`
	OverallPoints int     `json:"overall_points"`
	OverallRank   int     `json:"overall_rank"`
	BankBalance   float64 `json:"bank_balance"`
}

// AnalysisResult is the full squad analysis for one entry and gameweek.
type AnalysisResult struct {
	Gameweek       int                         `json:"gameweek"`
	TeamStatus     TeamStatus                  `json:"team_status"`
	CurrentSquad   []models.SquadPlayer        `json:"current_squad"`
	CaptainPicks   []models.SquadPlayer        `json:"captain_picks"`
	Suggestions    []models.TransferSuggestion `json:"transfer_suggestions"`
	SkippedPlayers int                         `json:"skipped_players"`
	GeneratedAt    time.Time                   `json:"predictions_updated"`
}

// TeamAnalyzer composes the prediction engine and the transfer optimizer
// into the full analyze-my-team flow.
type TeamAnalyzer struct {
	client      *providers.FPLClient
	refresh     *RefreshService
	prediction  *PredictionService
	players     *PlayerStore
	predictions *PredictionStore
	cache       *CacheService
	optimizer   *optimizer.Optimizer
	logger      *logrus.Logger
	maxPerTeam  int
	captainN    int
}

func NewTeamAnalyzer(
	client *providers.FPLClient,
	refresh *RefreshService,
	prediction *PredictionService,
	players *PlayerStore,
	predictions *PredictionStore,
	cache *CacheService,
	opt *optimizer.Optimizer,
	logger *logrus.Logger,
	maxPerTeam int,
) *TeamAnalyzer {
	return &TeamAnalyzer{
		client:      client,
		refresh:     refresh,
		prediction:  prediction,
		players:     players,
		predictions: predictions,
		cache:       cache,
		optimizer:   opt,
		logger:      logger,
		maxPerTeam:  maxPerTeam,
		captainN:    3,
	}
}

// AnalyzeTeam fetches the entry's squad, refreshes predictions for the whole
// element pool, and returns squad status, captain picks and a transfer plan.
// A systemic failure (FPL API unreachable, empty store) fails the whole
// analysis; individual unpredictable players are skipped and counted.
func (a *TeamAnalyzer) AnalyzeTeam(ctx context.Context, entryID uint, freeTransfers int) (*AnalysisResult, error) {
	gameweek, err := a.refresh.CurrentGameweek(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to determine current gameweek: %w", err)
	}

	cacheKey := AnalysisCacheKey(entryID, gameweek, freeTransfers)
	var cached AnalysisResult
	if err := a.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	entry, err := a.client.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	picks, err := a.client.GetEntryPicks(ctx, entryID, gameweek)
	if err != nil {
		return nil, err
	}

	bankBalance := float64(picks.EntryHistory.Bank) / 10

	predictions, skipped, err := a.prediction.RefreshPredictions(ctx, gameweek)
	if err != nil {
		return nil, err
	}
	predicted := make(map[uint]models.Prediction, len(predictions))
	for _, p := range predictions {
		predicted[p.PlayerID] = p
	}

	allPlayers, err := a.players.List(PlayerFilter{})
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Player, len(allPlayers))
	for i := range allPlayers {
		byID[allPlayers[i].ID] = &allPlayers[i]
	}

	squad := models.Squad{
		Budget:        bankBalance,
		FreeTransfers: freeTransfers,
	}
	for _, pick := range picks.Picks {
		player, ok := byID[pick.Element]
		if !ok {
			a.logger.WithField("player_id", pick.Element).Warn("Squad player missing from store, skipping")
			continue
		}
		sp := models.SquadPlayer{Player: *player}
		if pred, ok := predicted[player.ID]; ok {
			sp.PredictedPoints = pred.PredictedPoints
			sp.HasPrediction = true
		} else {
			a.logger.WithField("player_id", player.ID).Warn("Squad player has no prediction for this gameweek")
		}
		squad.Players = append(squad.Players, sp)
	}

	pool := make([]optimizer.RatedPlayer, 0, len(predictions))
	for _, pred := range predictions {
		player, ok := byID[pred.PlayerID]
		if !ok {
			continue
		}
		pool = append(pool, optimizer.RatedPlayer{
			Player:          *player,
			PredictedPoints: pred.PredictedPoints,
		})
	}

	suggestions := a.optimizer.SuggestTransfers(squad, pool, freeTransfers)
	plan := optimizer.BuildTransferPlan(squad, suggestions, a.maxPerTeam)

	result := &AnalysisResult{
		Gameweek:       gameweek,
		TeamStatus:     TeamStatus{Name: entry.Name, OverallPoints: entry.SummaryOverallPoints, OverallRank: entry.SummaryOverallRank, BankBalance: bankBalance},
		CurrentSquad:   squad.Players,
		CaptainPicks:   optimizer.CaptainPicks(squad, a.captainN),
		Suggestions:    plan,
		SkippedPlayers: skipped,
		GeneratedAt:    time.Now().UTC(),
	}

	a.cache.SetWithRetry(ctx, cacheKey, result, 10*time.Minute, 3)

	return result, nil
}
