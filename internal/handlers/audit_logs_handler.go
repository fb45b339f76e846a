package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/vet-backoffice/internal/audit"
	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/vet-backoffice/internal/middleware"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

// AuditLogLister is satisfied by audit.Logger and audit.MemoryLog.
type AuditLogLister interface {
	List(ctx context.Context, f audit.ListFilter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs AuditLogLister
	loc  *time.Location
}

func NewAuditLogsHandler(logs AuditLogLister, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, loc: loc}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	from, to, ok := dateRange(c, h.loc)
	if !ok {
		return
	}
	page, limit := httpresp.Pagination(c)

	logs, total, err := h.logs.List(c.Request.Context(), audit.ListFilter{
		UserID: middleware.UserID(c),
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		From:   from,
		To:     to,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, logs, total, page, limit)
}
