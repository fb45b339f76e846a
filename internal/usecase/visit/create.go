package visit

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/audit"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/ownership"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/treatment"
	domain "github.com/BruksfildServices01/vet-backoffice/internal/domain/visit"
	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateVisitInput struct {
	UserID     uint
	CustomerID uint
	PetID      uint

	Title       string
	Description string
	ScheduledAt time.Time
	Status      string

	Treatments []TreatmentInput
	Notes      []string
}

// ======================================================
// USE CASE
// ======================================================

type CreateVisit struct {
	chain      *ownership.Chain
	repo       domain.Repository
	treatments treatment.Repository
	audit      *audit.Dispatcher
	now        func() time.Time
}

func NewCreateVisit(
	chain *ownership.Chain,
	repo domain.Repository,
	treatments treatment.Repository,
	audit *audit.Dispatcher,
) *CreateVisit {
	return &CreateVisit{
		chain:      chain,
		repo:       repo,
		treatments: treatments,
		audit:      audit,
		now:        time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateVisit) Execute(
	ctx context.Context,
	in CreateVisitInput,
) (*models.Visit, error) {

	// --------------------------------------------------
	// Ownership
	// --------------------------------------------------
	scope, err := uc.chain.Pet(ctx, in.UserID, in.CustomerID, in.PetID)
	if err != nil {
		return nil, err
	}

	status, err := domain.InitialStatus(in.Status)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, httperr.ErrValidation("title_required")
	}
	if in.ScheduledAt.IsZero() {
		return nil, httperr.ErrValidation("scheduled_at_required")
	}

	// --------------------------------------------------
	// Treatments, priced from the caller's catalog
	// --------------------------------------------------
	ids := make([]uint, 0, len(in.Treatments))
	for _, t := range in.Treatments {
		ids = append(ids, t.TreatmentID)
	}

	catalog, err := uc.treatments.GetTreatmentsByIDs(ctx, in.UserID, ids)
	if err != nil {
		return nil, err
	}

	items := make([]models.VisitTreatment, 0, len(in.Treatments))
	for _, t := range in.Treatments {
		item, ok := catalog[t.TreatmentID]
		if !ok {
			return nil, httperr.ErrNotFound("treatment_not_found")
		}
		items = append(items, buildVisitTreatment(item, t, in.ScheduledAt))
	}

	notes := make([]models.VisitNote, 0, len(in.Notes))
	for _, content := range in.Notes {
		if content = strings.TrimSpace(content); content != "" {
			notes = append(notes, models.VisitNote{Content: content})
		}
	}

	// --------------------------------------------------
	// Persist visit + children in one transaction
	// --------------------------------------------------
	v := &models.Visit{
		CustomerID:  scope.Customer.ID,
		PetID:       scope.Pet.ID,
		Status:      string(status),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		ScheduledAt: in.ScheduledAt,
		Treatments:  items,
		Notes:       notes,
	}
	if status == domain.StatusCompleted {
		now := uc.now()
		v.CompletedAt = &now
	}

	if err := uc.repo.CreateVisit(ctx, v); err != nil {
		return nil, err
	}

	for i := range v.Treatments {
		item := catalog[v.Treatments[i].TreatmentID]
		v.Treatments[i].Treatment = &item
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "visit_created",
		Entity:   "visit",
		EntityID: entityID(v.ID),
		Metadata: map[string]any{
			"pet_id":     v.PetID,
			"status":     v.Status,
			"treatments": len(v.Treatments),
		},
	})

	return v, nil
}

// buildVisitTreatment fills price and next due date from the catalog item
// when the request leaves them out.
func buildVisitTreatment(item models.Treatment, in TreatmentInput, scheduledAt time.Time) models.VisitTreatment {
	vt := models.VisitTreatment{
		TreatmentID: item.ID,
		Price:       item.DefaultPrice,
		NextDueAt:   in.NextDueAt,
	}
	if in.Price != nil {
		vt.Price = *in.Price
	}
	if vt.NextDueAt == nil {
		vt.NextDueAt = treatment.NextDue(scheduledAt, item)
	}
	return vt
}
