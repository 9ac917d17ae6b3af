package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fpl-analytics/fpl-analyzer/internal/services"
	"github.com/fpl-analytics/fpl-analyzer/pkg/utils"
)

type DataHandler struct {
	refresh *services.RefreshService
}

func NewDataHandler(refresh *services.RefreshService) *DataHandler {
	return &DataHandler{refresh: refresh}
}

// RefreshData forces an immediate pull from the FPL API.
func (h *DataHandler) RefreshData(c *gin.Context) {
	count, err := h.refresh.RefreshNow(c.Request.Context())
	if err != nil {
		utils.SendUpstreamError(c, "Data refresh failed: "+err.Error())
		return
	}

	utils.SendSuccess(c, gin.H{"players_refreshed": count})
}
