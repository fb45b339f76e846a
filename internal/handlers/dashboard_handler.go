package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/vet-backoffice/internal/middleware"
	ucDashboard "github.com/BruksfildServices01/vet-backoffice/internal/usecase/dashboard"
)

type DashboardHandler struct {
	dashboard *ucDashboard.Service
}

func NewDashboardHandler(dashboard *ucDashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, stats)
}
