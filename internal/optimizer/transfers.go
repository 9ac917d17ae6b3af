package optimizer

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/fpl-analytics/fpl-analyzer/internal/models"
)

// RatedPlayer is a candidate from the available pool with its prediction
// attached.
type RatedPlayer struct {
	Player          models.Player `json:"player"`
	PredictedPoints float64       `json:"predicted_points"`
}

// Optimizer ranks candidate squad changes by transfer value. It enforces
// position, price and identity constraints per pair; cross-suggestion
// constraints (one suggestion per outgoing player, team quotas) belong to
// BuildTransferPlan.
type Optimizer struct {
	pricePenalty float64
	logger       *logrus.Logger
}

func NewOptimizer(pricePenalty float64, logger *logrus.Logger) *Optimizer {
	return &Optimizer{
		pricePenalty: pricePenalty,
		logger:       logger,
	}
}

// SuggestTransfers enumerates legal replacements for each owned player and
// returns the highest-value swaps, truncated to the free transfers available.
// Only positive-value transfers are suggested.
func (o *Optimizer) SuggestTransfers(squad models.Squad, pool []RatedPlayer, freeTransfers int) []models.TransferSuggestion {
	if freeTransfers <= 0 {
		return nil
	}

	var suggestions []models.TransferSuggestion

	for _, owned := range squad.Players {
		// A missing estimate would inflate the apparent gain of every
		// replacement; leave that slot alone.
		if !owned.HasPrediction {
			continue
		}

		maxPrice := owned.Player.Price + squad.Budget

		for _, candidate := range pool {
			if candidate.Player.Position != owned.Player.Position {
				continue
			}
			if candidate.Player.Price > maxPrice {
				continue
			}
			if candidate.Player.ID == owned.Player.ID || squad.Contains(candidate.Player.ID) {
				continue
			}

			pointGain := candidate.PredictedPoints - owned.PredictedPoints
			value := o.transferValue(owned.Player.Price, candidate.Player.Price, pointGain)
			if value <= 0 {
				continue
			}

			suggestions = append(suggestions, models.TransferSuggestion{
				Out:           target(owned.Player, owned.PredictedPoints),
				In:            target(candidate.Player, candidate.PredictedPoints),
				PointGain:     pointGain,
				PriceDiff:     candidate.Player.Price - owned.Player.Price,
				TransferValue: value,
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].TransferValue > suggestions[j].TransferValue
	})

	if len(suggestions) > freeTransfers {
		suggestions = suggestions[:freeTransfers]
	}

	o.logger.WithFields(logrus.Fields{
		"owned":       len(squad.Players),
		"pool":        len(pool),
		"suggestions": len(suggestions),
	}).Debug("Transfer suggestions computed")

	return suggestions
}

// transferValue is the predicted-point gain minus a fractional penalty on any
// price increase. Cheaper candidates carry no penalty or bonus beyond the
// point delta itself.
func (o *Optimizer) transferValue(outPrice, inPrice, pointGain float64) float64 {
	priceDiff := inPrice - outPrice
	if priceDiff > 0 {
		return pointGain - priceDiff*o.pricePenalty
	}
	return pointGain
}

func target(p models.Player, predicted float64) models.TransferTarget {
	return models.TransferTarget{
		PlayerID:        p.ID,
		Name:            p.Name,
		Team:            p.Team,
		Position:        p.Position,
		Price:           p.Price,
		PredictedPoints: predicted,
	}
}

// CaptainPicks returns the top n squad players by predicted points.
func CaptainPicks(squad models.Squad, n int) []models.SquadPlayer {
	picks := make([]models.SquadPlayer, len(squad.Players))
	copy(picks, squad.Players)
	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].PredictedPoints > picks[j].PredictedPoints
	})
	if len(picks) > n {
		picks = picks[:n]
	}
	return picks
}
