package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fpl-analytics/fpl-analyzer/internal/services"
	"github.com/fpl-analytics/fpl-analyzer/pkg/utils"
)

type TeamHandler struct {
	analyzer *services.TeamAnalyzer
}

func NewTeamHandler(analyzer *services.TeamAnalyzer) *TeamHandler {
	return &TeamHandler{analyzer: analyzer}
}

// AnalyzeTeam runs the full squad analysis for an FPL entry: refreshed
// predictions, captain picks and a transfer plan.
func (h *TeamHandler) AnalyzeTeam(c *gin.Context) {
	entryID, err := strconv.ParseUint(c.Param("entryId"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid entry ID", err.Error())
		return
	}

	freeTransfers := 1
	if ft := c.Query("free_transfers"); ft != "" {
		v, err := strconv.Atoi(ft)
		if err != nil || v < 1 {
			utils.SendValidationError(c, "Invalid free_transfers", "must be a positive integer")
			return
		}
		freeTransfers = v
	}

	result, err := h.analyzer.AnalyzeTeam(c.Request.Context(), uint(entryID), freeTransfers)
	if err != nil {
		utils.SendUpstreamError(c, "Team analysis failed: "+err.Error())
		return
	}

	utils.SendSuccess(c, result)
}
