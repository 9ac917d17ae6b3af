package providers

import (
	"strconv"
	"time"

	"gorm.io/datatypes"

	"github.com/fpl-analytics/fpl-analyzer/internal/models"
)

var positionByElementType = map[int]models.Position{
	1: models.PositionGoalkeeper,
	2: models.PositionDefender,
	3: models.PositionMidfielder,
	4: models.PositionForward,
}

// fixtureLookahead bounds the number of upcoming fixtures stored per player.
const fixtureLookahead = 5

// ToPlayer converts an FPL element plus its match history and the league
// fixture list into a player snapshot. Prices arrive in tenths of a million.
func ToPlayer(el Element, teams map[uint]Team, history []HistoryEntry, fixtures []Fixture, now time.Time) models.Player {
	seasonGames := 0
	for _, h := range history {
		if h.Minutes > 0 {
			seasonGames++
		}
	}

	records := make([]models.MatchRecord, 0, len(history))
	for _, h := range history {
		records = append(records, models.MatchRecord{
			Round:       h.Round,
			Minutes:     h.Minutes,
			Goals:       h.GoalsScored,
			Assists:     h.Assists,
			CleanSheets: h.CleanSheets,
			TotalPoints: h.TotalPoints,
		})
	}

	teamName := ""
	if t, ok := teams[el.Team]; ok {
		teamName = t.Name
	}

	return models.Player{
		ID:            el.ID,
		Name:          el.WebName,
		Team:          teamName,
		TeamID:        el.Team,
		Position:      positionByElementType[el.ElementType],
		Price:         float64(el.NowCost) / 10,
		TotalPoints:   el.TotalPoints,
		SeasonGames:   seasonGames,
		SeasonGoals:   el.GoalsScored,
		SeasonAssists: el.Assists,
		Form:          parseFloat(el.Form),
		PointsPerGame: parseFloat(el.PointsPerGame),
		SelectedBy:    parseFloat(el.SelectedByPercent),
		LastUpdated:   now,
		History:       datatypes.NewJSONType(records),
		Fixtures:      datatypes.NewJSONType(UpcomingFixtures(fixtures, el.Team, fixtureLookahead)),
	}
}

// UpcomingFixtures filters the league fixture list down to a team's next n
// unfinished matches, viewed from that team's perspective.
func UpcomingFixtures(fixtures []Fixture, teamID uint, n int) []models.FixtureContext {
	out := make([]models.FixtureContext, 0, n)
	for _, f := range fixtures {
		if f.Finished || (f.TeamH != teamID && f.TeamA != teamID) {
			continue
		}
		gameweek := 0
		if f.Event != nil {
			gameweek = *f.Event
		}
		out = append(out, models.FixtureContext{
			Gameweek:       gameweek,
			HomeTeamID:     f.TeamH,
			AwayTeamID:     f.TeamA,
			HomeDifficulty: f.TeamHDifficulty,
			AwayDifficulty: f.TeamADifficulty,
			IsHome:         f.TeamH == teamID,
		})
		if len(out) == n {
			break
		}
	}
	return out
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
