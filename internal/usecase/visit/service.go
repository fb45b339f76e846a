package visit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/audit"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/ownership"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/treatment"
	visitdomain "github.com/BruksfildServices01/vet-backoffice/internal/domain/visit"
	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

const MaxNoteLength = 5000

type UpdateVisitInput struct {
	Title       *string
	Description *string
	ScheduledAt *time.Time
}

type UpdateTreatmentInput struct {
	Price     *float64
	NextDueAt *time.Time

	// ClearNextDueAt removes the reminder; NextDueAt is ignored.
	ClearNextDueAt bool
}

// Service covers reads and edits of a visit and its treatments and notes.
// State transitions live in CompleteVisit and CancelVisit.
type Service struct {
	chain      *ownership.Chain
	repo       visitdomain.Repository
	treatments treatment.Repository
	audit      *audit.Dispatcher
}

func NewService(
	chain *ownership.Chain,
	repo visitdomain.Repository,
	treatments treatment.Repository,
	audit *audit.Dispatcher,
) *Service {
	return &Service{
		chain:      chain,
		repo:       repo,
		treatments: treatments,
		audit:      audit,
	}
}

func (s *Service) scope(ctx context.Context, ref Ref) (*ownership.Scope, error) {
	return s.chain.Visit(ctx, ref.UserID, ref.CustomerID, ref.PetID, ref.VisitID)
}

func (s *Service) record(ref Ref, action, entity string, id uint, meta any) {
	s.audit.Dispatch(audit.Event{
		UserID:   ref.UserID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID(id),
		Metadata: meta,
	})
}

func childNotFound(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrNotFound(code)
	}
	return err
}

// ======================================================
// VISIT
// ======================================================

func (s *Service) Get(ctx context.Context, ref Ref) (*models.Visit, error) {
	if _, err := s.scope(ctx, ref); err != nil {
		return nil, err
	}

	v, err := s.repo.GetVisitDetail(ctx, ref.VisitID)
	if err != nil {
		return nil, childNotFound(err, "visit_not_found")
	}
	return v, nil
}

func (s *Service) Update(ctx context.Context, ref Ref, in UpdateVisitInput) (*models.Visit, error) {
	scope, err := s.scope(ctx, ref)
	if err != nil {
		return nil, err
	}
	v := scope.Visit

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, httperr.ErrValidation("title_required")
		}
		v.Title = title
	}
	if in.Description != nil {
		v.Description = strings.TrimSpace(*in.Description)
	}
	if in.ScheduledAt != nil {
		if in.ScheduledAt.IsZero() {
			return nil, httperr.ErrValidation("scheduled_at_required")
		}
		v.ScheduledAt = *in.ScheduledAt
	}

	if err := s.repo.UpdateVisit(ctx, v); err != nil {
		return nil, err
	}

	s.record(ref, "visit_updated", "visit", v.ID, nil)
	return v, nil
}

func (s *Service) Delete(ctx context.Context, ref Ref) error {
	if _, err := s.scope(ctx, ref); err != nil {
		return err
	}

	if err := s.repo.DeleteVisit(ctx, ref.VisitID); err != nil {
		return childNotFound(err, "visit_not_found")
	}

	s.record(ref, "visit_deleted", "visit", ref.VisitID, nil)
	return nil
}

// ======================================================
// TREATMENTS
// ======================================================

func (s *Service) ListTreatments(ctx context.Context, ref Ref) ([]models.VisitTreatment, error) {
	if _, err := s.scope(ctx, ref); err != nil {
		return nil, err
	}
	return s.repo.ListVisitTreatments(ctx, ref.VisitID)
}

func (s *Service) AddTreatment(ctx context.Context, ref Ref, in TreatmentInput) (*models.VisitTreatment, error) {
	scope, err := s.scope(ctx, ref)
	if err != nil {
		return nil, err
	}

	item, err := s.treatments.GetTreatment(ctx, ref.UserID, in.TreatmentID)
	if err != nil {
		return nil, childNotFound(err, "treatment_not_found")
	}

	vt := buildVisitTreatment(*item, in, scope.Visit.ScheduledAt)
	vt.VisitID = scope.Visit.ID

	if err := s.repo.CreateVisitTreatment(ctx, &vt); err != nil {
		return nil, err
	}
	vt.Treatment = item

	s.record(ref, "visit_treatment_added", "visit_treatment", vt.ID, map[string]any{
		"visit_id":     vt.VisitID,
		"treatment_id": vt.TreatmentID,
	})
	return &vt, nil
}

func (s *Service) UpdateTreatment(
	ctx context.Context,
	ref Ref,
	visitTreatmentID uint,
	in UpdateTreatmentInput,
) (*models.VisitTreatment, error) {

	if _, err := s.scope(ctx, ref); err != nil {
		return nil, err
	}

	vt, err := s.repo.GetVisitTreatment(ctx, ref.VisitID, visitTreatmentID)
	if err != nil {
		return nil, childNotFound(err, "visit_treatment_not_found")
	}

	if in.Price != nil {
		if *in.Price < 0 {
			return nil, httperr.ErrValidation("invalid_price")
		}
		vt.Price = *in.Price
	}
	switch {
	case in.ClearNextDueAt:
		vt.NextDueAt = nil
	case in.NextDueAt != nil:
		vt.NextDueAt = in.NextDueAt
	}

	if err := s.repo.UpdateVisitTreatment(ctx, vt); err != nil {
		return nil, err
	}

	s.record(ref, "visit_treatment_updated", "visit_treatment", vt.ID, nil)
	return vt, nil
}

func (s *Service) RemoveTreatment(ctx context.Context, ref Ref, visitTreatmentID uint) error {
	if _, err := s.scope(ctx, ref); err != nil {
		return err
	}

	if err := s.repo.DeleteVisitTreatment(ctx, ref.VisitID, visitTreatmentID); err != nil {
		return childNotFound(err, "visit_treatment_not_found")
	}

	s.record(ref, "visit_treatment_removed", "visit_treatment", visitTreatmentID, nil)
	return nil
}

// ======================================================
// NOTES
// ======================================================

func noteContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", httperr.ErrValidation("note_content_required")
	}
	if len([]rune(content)) > MaxNoteLength {
		return "", httperr.ErrValidation("note_too_long")
	}
	return content, nil
}

func (s *Service) ListNotes(ctx context.Context, ref Ref) ([]models.VisitNote, error) {
	if _, err := s.scope(ctx, ref); err != nil {
		return nil, err
	}
	return s.repo.ListVisitNotes(ctx, ref.VisitID)
}

func (s *Service) AddNote(ctx context.Context, ref Ref, content string) (*models.VisitNote, error) {
	if _, err := s.scope(ctx, ref); err != nil {
		return nil, err
	}

	content, err := noteContent(content)
	if err != nil {
		return nil, err
	}

	n := &models.VisitNote{VisitID: ref.VisitID, Content: content}
	if err := s.repo.CreateVisitNote(ctx, n); err != nil {
		return nil, err
	}

	s.record(ref, "visit_note_added", "visit_note", n.ID, nil)
	return n, nil
}

func (s *Service) UpdateNote(ctx context.Context, ref Ref, noteID uint, content string) (*models.VisitNote, error) {
	if _, err := s.scope(ctx, ref); err != nil {
		return nil, err
	}

	n, err := s.repo.GetVisitNote(ctx, ref.VisitID, noteID)
	if err != nil {
		return nil, childNotFound(err, "note_not_found")
	}

	if n.Content, err = noteContent(content); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateVisitNote(ctx, n); err != nil {
		return nil, err
	}

	s.record(ref, "visit_note_updated", "visit_note", n.ID, nil)
	return n, nil
}

func (s *Service) DeleteNote(ctx context.Context, ref Ref, noteID uint) error {
	if _, err := s.scope(ctx, ref); err != nil {
		return err
	}

	if err := s.repo.DeleteVisitNote(ctx, ref.VisitID, noteID); err != nil {
		return childNotFound(err, "note_not_found")
	}

	s.record(ref, "visit_note_deleted", "visit_note", noteID, nil)
	return nil
}
