package providers

// FPL API response structures (fantasy.premierleague.com/api).

type Bootstrap struct {
	Events       []Event       `json:"events"`
	Teams        []Team        `json:"teams"`
	Elements     []Element     `json:"elements"`
	ElementTypes []ElementType `json:"element_types"`
}

type Event struct {
	ID        int  `json:"id"`
	IsCurrent bool `json:"is_current"`
	IsNext    bool `json:"is_next"`
	Finished  bool `json:"finished"`
}

type Team struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

type ElementType struct {
	ID                int    `json:"id"`
	SingularNameShort string `json:"singular_name_short"`
}

// Element is one player row from bootstrap-static. Several numeric fields
// arrive as strings; prices are in tenths of a million.
type Element struct {
	ID                uint   `json:"id"`
	WebName           string `json:"web_name"`
	Team              uint   `json:"team"`
	ElementType       int    `json:"element_type"`
	NowCost           int    `json:"now_cost"`
	TotalPoints       int    `json:"total_points"`
	Minutes           int    `json:"minutes"`
	GoalsScored       int    `json:"goals_scored"`
	Assists           int    `json:"assists"`
	CleanSheets       int    `json:"clean_sheets"`
	Form              string `json:"form"`
	PointsPerGame     string `json:"points_per_game"`
	SelectedByPercent string `json:"selected_by_percent"`
}

type Fixture struct {
	ID              uint `json:"id"`
	Event           *int `json:"event"`
	TeamH           uint `json:"team_h"`
	TeamA           uint `json:"team_a"`
	TeamHDifficulty int  `json:"team_h_difficulty"`
	TeamADifficulty int  `json:"team_a_difficulty"`
	Finished        bool `json:"finished"`
}

type ElementSummary struct {
	History []HistoryEntry `json:"history"`
}

type HistoryEntry struct {
	Element     uint `json:"element"`
	Round       int  `json:"round"`
	Minutes     int  `json:"minutes"`
	GoalsScored int  `json:"goals_scored"`
	Assists     int  `json:"assists"`
	CleanSheets int  `json:"clean_sheets"`
	TotalPoints int  `json:"total_points"`
}

type Entry struct {
	ID                   uint   `json:"id"`
	Name                 string `json:"name"`
	SummaryOverallPoints int    `json:"summary_overall_points"`
	SummaryOverallRank   int    `json:"summary_overall_rank"`
}

type EntryPicks struct {
	Picks        []Pick       `json:"picks"`
	EntryHistory EntryHistory `json:"entry_history"`
}

type Pick struct {
	Element   uint `json:"element"`
	Position  int  `json:"position"`
	IsCaptain bool `json:"is_captain"`
}

type EntryHistory struct {
	Bank  int `json:"bank"`
	Value int `json:"value"`
}

// CurrentGameweek returns the id of the current event, falling back to 1
// when none is flagged.
func (b *Bootstrap) CurrentGameweek() int {
	for _, e := range b.Events {
		if e.IsCurrent {
			return e.ID
		}
	}
	return 1
}
