package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/vet-backoffice/internal/middleware"
	ucTreatment "github.com/BruksfildServices01/vet-backoffice/internal/usecase/treatment"
)

type TreatmentHandler struct {
	treatments *ucTreatment.Service
}

func NewTreatmentHandler(treatments *ucTreatment.Service) *TreatmentHandler {
	return &TreatmentHandler{treatments: treatments}
}

type CreateTreatmentRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	DefaultPrice float64 `json:"default_price" binding:"gte=0"`
	IntervalDays *int    `json:"interval_days" binding:"omitempty,gte=1"`
}

type UpdateTreatmentRequest struct {
	Name         *string       `json:"name"`
	Description  *string       `json:"description"`
	DefaultPrice *float64      `json:"default_price" binding:"omitempty,gte=0"`
	IntervalDays Nullable[int] `json:"interval_days"`
}

func (h *TreatmentHandler) List(c *gin.Context) {
	items, err := h.treatments.List(c.Request.Context(), middleware.UserID(c), c.Query("query"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *TreatmentHandler) Create(c *gin.Context) {
	var req CreateTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	item, err := h.treatments.Create(c.Request.Context(), middleware.UserID(c), ucTreatment.CreateInput{
		Name:         req.Name,
		Description:  req.Description,
		DefaultPrice: req.DefaultPrice,
		IntervalDays: req.IntervalDays,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, item)
}

func (h *TreatmentHandler) Update(c *gin.Context) {
	treatmentID, ok := idParam(c, "treatmentId")
	if !ok {
		return
	}

	var req UpdateTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	item, err := h.treatments.Update(c.Request.Context(), middleware.UserID(c), treatmentID, ucTreatment.UpdateInput{
		Name:              req.Name,
		Description:       req.Description,
		DefaultPrice:      req.DefaultPrice,
		IntervalDays:      req.IntervalDays.Value,
		ClearIntervalDays: req.IntervalDays.Cleared(),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, item)
}

func (h *TreatmentHandler) Delete(c *gin.Context) {
	treatmentID, ok := idParam(c, "treatmentId")
	if !ok {
		return
	}

	if err := h.treatments.Delete(c.Request.Context(), middleware.UserID(c), treatmentID); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}
