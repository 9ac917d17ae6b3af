package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpl-analytics/fpl-analyzer/internal/models"
)

func intPtr(v int) *int { return &v }

func TestToPlayer(t *testing.T) {
	el := Element{
		ID:                42,
		WebName:           "Saka",
		Team:              1,
		ElementType:       3,
		NowCost:           92,
		TotalPoints:       120,
		GoalsScored:       8,
		Assists:           10,
		Form:              "6.4",
		PointsPerGame:     "5.2",
		SelectedByPercent: "45.3",
	}
	teams := map[uint]Team{1: {ID: 1, Name: "Arsenal", ShortName: "ARS"}}
	history := []HistoryEntry{
		{Round: 1, Minutes: 90, GoalsScored: 1, TotalPoints: 8},
		{Round: 2, Minutes: 0, TotalPoints: 0},
		{Round: 3, Minutes: 78, Assists: 1, TotalPoints: 5},
	}
	fixtures := []Fixture{
		{Event: intPtr(4), TeamH: 1, TeamA: 2, TeamHDifficulty: 2, TeamADifficulty: 4},
	}
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	player := ToPlayer(el, teams, history, fixtures, now)

	assert.Equal(t, uint(42), player.ID)
	assert.Equal(t, "Saka", player.Name)
	assert.Equal(t, "Arsenal", player.Team)
	assert.Equal(t, models.PositionMidfielder, player.Position)
	// Prices arrive in tenths of a million.
	assert.InDelta(t, 9.2, player.Price, 1e-9)
	// Only appearances with minutes count as season games.
	assert.Equal(t, 2, player.SeasonGames)
	assert.Equal(t, 8, player.SeasonGoals)
	assert.Equal(t, 10, player.SeasonAssists)
	assert.InDelta(t, 6.4, player.Form, 1e-9)
	assert.InDelta(t, 5.2, player.PointsPerGame, 1e-9)
	assert.InDelta(t, 45.3, player.SelectedBy, 1e-9)
	assert.Equal(t, now, player.LastUpdated)

	records := player.RecentHistory()
	require.Len(t, records, 3)
	assert.Equal(t, 1, records[0].Goals)

	next := player.NextFixture()
	require.NotNil(t, next)
	assert.Equal(t, 4, next.Gameweek)
	assert.True(t, next.IsHome)
	assert.Equal(t, 2, next.HomeDifficulty)
}

func TestToPlayerUnparseableStrings(t *testing.T) {
	el := Element{ID: 1, ElementType: 4, NowCost: 45, Form: "", PointsPerGame: "n/a"}

	player := ToPlayer(el, nil, nil, nil, time.Now())

	assert.Zero(t, player.Form)
	assert.Zero(t, player.PointsPerGame)
	assert.Equal(t, models.PositionForward, player.Position)
	assert.Empty(t, player.Team)
}

func TestUpcomingFixtures(t *testing.T) {
	fixtures := []Fixture{
		{Event: intPtr(1), TeamH: 1, TeamA: 2, Finished: true},
		{Event: intPtr(2), TeamH: 3, TeamA: 4},                                         // other teams
		{Event: intPtr(3), TeamH: 1, TeamA: 5, TeamHDifficulty: 2, TeamADifficulty: 3}, // home
		{Event: intPtr(4), TeamH: 6, TeamA: 1, TeamHDifficulty: 3, TeamADifficulty: 4}, // away
		{Event: nil, TeamH: 1, TeamA: 7, TeamHDifficulty: 2, TeamADifficulty: 2},       // unscheduled
		{Event: intPtr(6), TeamH: 1, TeamA: 8, TeamHDifficulty: 5, TeamADifficulty: 1},
	}

	out := UpcomingFixtures(fixtures, 1, 3)
	require.Len(t, out, 3)

	assert.Equal(t, 3, out[0].Gameweek)
	assert.True(t, out[0].IsHome)

	assert.Equal(t, 4, out[1].Gameweek)
	assert.False(t, out[1].IsHome)
	assert.Equal(t, 4, out[1].AwayDifficulty)

	// Fixtures without an assigned event keep gameweek zero.
	assert.Zero(t, out[2].Gameweek)
}

func TestUpcomingFixturesTruncates(t *testing.T) {
	fixtures := make([]Fixture, 10)
	for i := range fixtures {
		fixtures[i] = Fixture{Event: intPtr(i + 1), TeamH: 1, TeamA: 2}
	}

	assert.Len(t, UpcomingFixtures(fixtures, 1, 5), 5)
	assert.Empty(t, UpcomingFixtures(fixtures, 99, 5))
}

func TestCurrentGameweek(t *testing.T) {
	b := &Bootstrap{Events: []Event{
		{ID: 1, Finished: true},
		{ID: 2, IsCurrent: true},
		{ID: 3, IsNext: true},
	}}
	assert.Equal(t, 2, b.CurrentGameweek())

	assert.Equal(t, 1, (&Bootstrap{}).CurrentGameweek())
}
