package models

// SquadPlayer pairs an owned player with their prediction for the gameweek
// under analysis. HasPrediction distinguishes a genuine zero-point estimate
// from a player the engine skipped.
type SquadPlayer struct {
	Player          Player  `json:"player"`
	PredictedPoints float64 `json:"predicted_points"`
	HasPrediction   bool    `json:"has_prediction"`
}

// Squad is the transient view of a manager's team for one analysis request:
// bank balance, owned players and free transfers available. It is rebuilt per
// request, never persisted.
type Squad struct {
	Budget        float64       `json:"budget"`
	Players       []SquadPlayer `json:"players"`
	FreeTransfers int           `json:"free_transfers"`
}

// Contains reports whether the squad already owns the given player.
func (s *Squad) Contains(playerID uint) bool {
	for _, sp := range s.Players {
		if sp.Player.ID == playerID {
			return true
		}
	}
	return false
}

// TransferTarget is one side of a suggested swap.
type TransferTarget struct {
	PlayerID        uint     `json:"player_id"`
	Name            string   `json:"name"`
	Team            string   `json:"team"`
	Position        Position `json:"position"`
	Price           float64  `json:"price"`
	PredictedPoints float64  `json:"predicted_points"`
}

// TransferSuggestion is a ranked (out, in) swap. Suggestions are produced per
// request and consumed immediately; they are never stored.
type TransferSuggestion struct {
	Out           TransferTarget `json:"out"`
	In            TransferTarget `json:"in"`
	PointGain     float64        `json:"point_gain"`
	PriceDiff     float64        `json:"price_diff"`
	TransferValue float64        `json:"transfer_value"`
}
