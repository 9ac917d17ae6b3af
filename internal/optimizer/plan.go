package optimizer

import "github.com/fpl-analytics/fpl-analyzer/internal/models"

// BuildTransferPlan post-filters ranked suggestions into a coherent plan for
// presentation: at most one suggestion per outgoing player, and the incoming
// side may not push any club over maxPerTeam players across the resulting
// squad. Ranking order is preserved; the per-pair scoring in SuggestTransfers
// is deliberately left free of these cross-suggestion constraints.
func BuildTransferPlan(squad models.Squad, suggestions []models.TransferSuggestion, maxPerTeam int) []models.TransferSuggestion {
	teamCounts := make(map[string]int)
	for _, sp := range squad.Players {
		teamCounts[sp.Player.Team]++
	}

	seenOut := make(map[uint]bool)
	plan := make([]models.TransferSuggestion, 0, len(suggestions))

	for _, s := range suggestions {
		if seenOut[s.Out.PlayerID] {
			continue
		}

		counts := teamCounts[s.In.Team]
		if s.In.Team != s.Out.Team {
			// The outgoing player frees a slot at their own club only.
			counts = teamCounts[s.In.Team] + 1
		}
		if maxPerTeam > 0 && counts > maxPerTeam {
			continue
		}

		seenOut[s.Out.PlayerID] = true
		if s.In.Team != s.Out.Team {
			teamCounts[s.In.Team]++
			teamCounts[s.Out.Team]--
		}
		plan = append(plan, s)
	}

	return plan
}
