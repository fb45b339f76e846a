package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/vet-backoffice/internal/dto"
	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/vet-backoffice/internal/middleware"
	ucImage "github.com/BruksfildServices01/vet-backoffice/internal/usecase/image"
	ucVisit "github.com/BruksfildServices01/vet-backoffice/internal/usecase/visit"
)

// ======================================================
// HANDLER
// ======================================================

type VisitHandler struct {
	createVisit   *ucVisit.CreateVisit
	completeVisit *ucVisit.CompleteVisit
	cancelVisit   *ucVisit.CancelVisit
	listVisits    *ucVisit.ListVisits
	visits        *ucVisit.Service
	images        *ucImage.Service
	loc           *time.Location
}

func NewVisitHandler(
	createVisit *ucVisit.CreateVisit,
	completeVisit *ucVisit.CompleteVisit,
	cancelVisit *ucVisit.CancelVisit,
	listVisits *ucVisit.ListVisits,
	visits *ucVisit.Service,
	images *ucImage.Service,
	loc *time.Location,
) *VisitHandler {
	return &VisitHandler{
		createVisit:   createVisit,
		completeVisit: completeVisit,
		cancelVisit:   cancelVisit,
		listVisits:    listVisits,
		visits:        visits,
		images:        images,
		loc:           loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type VisitTreatmentRequest struct {
	TreatmentID uint       `json:"treatment_id" binding:"required"`
	Price       *float64   `json:"price" binding:"omitempty,gte=0"`
	NextDueAt   *time.Time `json:"next_due_at"`
}

type CreateVisitRequest struct {
	Title       string                  `json:"title" binding:"required"`
	Description string                  `json:"description"`
	ScheduledAt time.Time               `json:"scheduled_at" binding:"required"`
	Status      string                  `json:"status" binding:"omitempty,visit_status"`
	Treatments  []VisitTreatmentRequest `json:"treatments" binding:"omitempty,dive"`
	Notes       []string                `json:"notes"`
}

type UpdateVisitRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

type UpdateVisitTreatmentRequest struct {
	Price     *float64            `json:"price" binding:"omitempty,gte=0"`
	NextDueAt Nullable[time.Time] `json:"next_due_at"`
}

type NoteRequest struct {
	Content string `json:"content" binding:"required"`
}

// ref reads the customer/pet/visit path ids into a usecase reference.
func (h *VisitHandler) ref(c *gin.Context) (ucVisit.Ref, bool) {
	ids, ok := idParams(c, "customerId", "petId", "visitId")
	if !ok {
		return ucVisit.Ref{}, false
	}
	return ucVisit.Ref{
		UserID:     middleware.UserID(c),
		CustomerID: ids[0],
		PetID:      ids[1],
		VisitID:    ids[2],
	}, true
}

// ======================================================
// LIST
// ======================================================

// ListAll serves /api/visits across every customer of the user.
func (h *VisitHandler) ListAll(c *gin.Context) {
	h.list(c, 0, 0)
}

func (h *VisitHandler) ListByPet(c *gin.Context) {
	ids, ok := idParams(c, "customerId", "petId")
	if !ok {
		return
	}
	h.list(c, ids[0], ids[1])
}

func (h *VisitHandler) list(c *gin.Context, customerID, petID uint) {
	from, to, ok := dateRange(c, h.loc)
	if !ok {
		return
	}
	page, limit := httpresp.Pagination(c)

	items, total, err := h.listVisits.Execute(c.Request.Context(), ucVisit.ListVisitsInput{
		UserID:     middleware.UserID(c),
		CustomerID: customerID,
		PetID:      petID,
		Status:     c.Query("status"),
		From:       from,
		To:         to,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, items, total, page, limit)
}

// ======================================================
// CREATE / READ / UPDATE / DELETE
// ======================================================

func (h *VisitHandler) Create(c *gin.Context) {
	ids, ok := idParams(c, "customerId", "petId")
	if !ok {
		return
	}

	var req CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	treatments := make([]ucVisit.TreatmentInput, 0, len(req.Treatments))
	for _, t := range req.Treatments {
		treatments = append(treatments, ucVisit.TreatmentInput{
			TreatmentID: t.TreatmentID,
			Price:       t.Price,
			NextDueAt:   t.NextDueAt,
		})
	}

	visit, err := h.createVisit.Execute(c.Request.Context(), ucVisit.CreateVisitInput{
		UserID:      middleware.UserID(c),
		CustomerID:  ids[0],
		PetID:       ids[1],
		Title:       req.Title,
		Description: req.Description,
		ScheduledAt: req.ScheduledAt,
		Status:      req.Status,
		Treatments:  treatments,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, visit)
}

func (h *VisitHandler) Get(c *gin.Context) {
	ref, ok := h.ref(c)
	if !ok {
		return
	}

	visit, err := h.visits.Get(c.Request.Context(), ref)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	images, err := h.images.List(c.Request.Context(), ucImage.Target{
		UserID:     ref.UserID,
		CustomerID: ref.CustomerID,
		PetID:      ref.PetID,
		VisitID:    ref.VisitID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.VisitDetailDTO{Visit: *visit, Images: images})
}

func (h *VisitHandler) Update(c *gin.Context) {
	ref, ok := h.ref(c)
	if !ok {
		return
	}

	var req UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	visit, err := h.visits.Update(c.Request.Context(), ref, ucVisit.UpdateVisitInput{
		Title:       req.Title,
		Description: req.Description,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, visit)
}

func (h *VisitHandler) Delete(c *gin.Context) {
	ref, ok := h.ref(c)
	if !ok {
		return
	}

	if err := h.visits.Delete(c.Request.Context(), ref); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// STATE
// ======================================================

func (h *VisitHandler) Complete(c *gin.Context) {
	ref, ok := h.ref(c)
	if !ok {
		return
	}

	visit, err := h.completeVisit.Execute(c.Request.Context(), ref)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, visit)
}

func (h *VisitHandler) Cancel(c *gin.Context) {
	ref, ok := h.ref(c)
	if !ok {
		return
	}

	visit, err := h.cancelVisit.Execute(c.Request.Context(), ref)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, visit)
}

// ======================================================
// TREATMENTS
// ======================================================

func (h *VisitHandler) ListTreatments(c *gin.Context) {
	ref, ok := h.ref(c)
	if !ok {
		return
	}

	items, err := h.visits.ListTreatments(c.Request.Context(), ref)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *VisitHandler) AddTreatment(c *gin.Context) {
	ref, ok := h.ref(c)
	if !ok {
		return
	}

	var req VisitTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	item, err := h.visits.AddTreatment(c.Request.Context(), ref, ucVisit.TreatmentInput{
		TreatmentID: req.TreatmentID,
		Price:       req.Price,
		NextDueAt:   req.NextDueAt,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, item)
}

func (h *VisitHandler) UpdateTreatment(c *gin.Context) {
	ref, ok := h.ref(c)
	if !ok {
		return
	}
	itemID, ok := idParam(c, "visitTreatmentId")
	if !ok {
		return
	}

	var req UpdateVisitTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	item, err := h.visits.UpdateTreatment(c.Request.Context(), ref, itemID, ucVisit.UpdateTreatmentInput{
		Price:          req.Price,
		NextDueAt:      req.NextDueAt.Value,
		ClearNextDueAt: req.NextDueAt.Cleared(),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, item)
}

func (h *VisitHandler) RemoveTreatment(c *gin.Context) {
	ref, ok := h.ref(c)
	if !ok {
		return
	}
	itemID, ok := idParam(c, "visitTreatmentId")
	if !ok {
		return
	}

	if err := h.visits.RemoveTreatment(c.Request.Context(), ref, itemID); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// NOTES
// ======================================================

func (h *VisitHandler) ListNotes(c *gin.Context) {
	ref, ok := h.ref(c)
	if !ok {
		return
	}

	notes, err := h.visits.ListNotes(c.Request.Context(), ref)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, notes)
}

func (h *VisitHandler) AddNote(c *gin.Context) {
	ref, ok := h.ref(c)
	if !ok {
		return
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	note, err := h.visits.AddNote(c.Request.Context(), ref, req.Content)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, note)
}

func (h *VisitHandler) UpdateNote(c *gin.Context) {
	ref, ok := h.ref(c)
	if !ok {
		return
	}
	noteID, ok := idParam(c, "noteId")
	if !ok {
		return
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	note, err := h.visits.UpdateNote(c.Request.Context(), ref, noteID, req.Content)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, note)
}

func (h *VisitHandler) DeleteNote(c *gin.Context) {
	ref, ok := h.ref(c)
	if !ok {
		return
	}
	noteID, ok := idParam(c, "noteId")
	if !ok {
		return
	}

	if err := h.visits.DeleteNote(c.Request.Context(), ref, noteID); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}
