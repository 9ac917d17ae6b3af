package models

import (
	"time"

	"gorm.io/datatypes"
)

// Position is the FPL position class of a player.
type Position string

const (
	PositionGoalkeeper Position = "GKP"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

// IsDefensive reports whether the position is scored with the defensive
// model variant (clean sheets dominate).
func (p Position) IsDefensive() bool {
	return p == PositionGoalkeeper || p == PositionDefender
}

// IsValid reports whether p is one of the four known position classes.
func (p Position) IsValid() bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward:
		return true
	}
	return false
}

// MatchRecord is one historical appearance. Records are ordered oldest to
// most recent.
type MatchRecord struct {
	Round       int `json:"round"`
	Minutes     int `json:"minutes"`
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	CleanSheets int `json:"clean_sheets"`
	TotalPoints int `json:"total_points"`
}

// FixtureContext is a single upcoming match from a player's perspective.
// Difficulty ratings come from the FPL API on a 1-5 ordinal scale, one per
// side.
type FixtureContext struct {
	Gameweek       int  `json:"gameweek"`
	HomeTeamID     uint `json:"home_team_id"`
	AwayTeamID     uint `json:"away_team_id"`
	HomeDifficulty int  `json:"home_difficulty"`
	AwayDifficulty int  `json:"away_difficulty"`
	IsHome         bool `json:"is_home"`
}

// Player is a per-gameweek snapshot of an FPL element: identity, price,
// season totals, recent match history and the upcoming fixture lookahead.
// Rows are replaced wholesale on each data refresh.
type Player struct {
	ID            uint      `gorm:"primaryKey" json:"id"` // FPL element ID
	Name          string    `gorm:"not null;index" json:"name"`
	Team          string    `gorm:"index" json:"team"`
	TeamID        uint      `gorm:"index" json:"team_id"`
	Position      Position  `gorm:"not null;index" json:"position"`
	Price         float64   `json:"price"`
	TotalPoints   int       `json:"total_points"`
	SeasonGames   int       `json:"season_games"`
	SeasonGoals   int       `json:"season_goals"`
	SeasonAssists int       `json:"season_assists"`
	Form          float64   `json:"form"`
	PointsPerGame float64   `json:"points_per_game"`
	SelectedBy    float64   `json:"selected_by"`
	LastUpdated   time.Time `json:"last_updated"`

	History  datatypes.JSONType[[]MatchRecord]    `json:"history"`
	Fixtures datatypes.JSONType[[]FixtureContext] `json:"fixtures"`
}

func (Player) TableName() string {
	return "players"
}

// RecentHistory returns the player's recent match records, oldest first.
func (p *Player) RecentHistory() []MatchRecord {
	return p.History.Data()
}

// NextFixture returns the first upcoming fixture, or nil when the lookahead
// is empty.
func (p *Player) NextFixture() *FixtureContext {
	fixtures := p.Fixtures.Data()
	if len(fixtures) == 0 {
		return nil
	}
	fx := fixtures[0]
	return &fx
}
