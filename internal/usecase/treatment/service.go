package treatment

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/vet-backoffice/internal/audit"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain"
	treatmentdomain "github.com/BruksfildServices01/vet-backoffice/internal/domain/treatment"
	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type CreateInput struct {
	Name         string
	Description  string
	DefaultPrice float64
	IntervalDays *int
}

type UpdateInput struct {
	Name         *string
	Description  *string
	DefaultPrice *float64
	IntervalDays *int

	// ClearIntervalDays drops the recurrence; IntervalDays is ignored.
	ClearIntervalDays bool
}

// Service manages the user's treatment catalog.
type Service struct {
	repo  treatmentdomain.Repository
	audit *audit.Dispatcher
}

func NewService(repo treatmentdomain.Repository, audit *audit.Dispatcher) *Service {
	return &Service{repo: repo, audit: audit}
}

func (s *Service) record(userID uint, action string, id uint) {
	s.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   action,
		Entity:   "treatment",
		EntityID: &id,
	})
}

func (s *Service) List(ctx context.Context, userID uint, query string) ([]models.Treatment, error) {
	return s.repo.ListTreatments(ctx, userID, query)
}

func (s *Service) Create(ctx context.Context, userID uint, in CreateInput) (*models.Treatment, error) {
	t := &models.Treatment{
		UserID:       userID,
		Name:         strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		DefaultPrice: in.DefaultPrice,
		IntervalDays: in.IntervalDays,
	}
	if err := validate(t); err != nil {
		return nil, err
	}

	if err := s.repo.CreateTreatment(ctx, t); err != nil {
		return nil, err
	}

	s.record(userID, "treatment_created", t.ID)
	return t, nil
}

func (s *Service) Update(ctx context.Context, userID, treatmentID uint, in UpdateInput) (*models.Treatment, error) {
	t, err := s.get(ctx, userID, treatmentID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		t.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		t.Description = strings.TrimSpace(*in.Description)
	}
	if in.DefaultPrice != nil {
		t.DefaultPrice = *in.DefaultPrice
	}
	switch {
	case in.ClearIntervalDays:
		t.IntervalDays = nil
	case in.IntervalDays != nil:
		t.IntervalDays = in.IntervalDays
	}
	if err := validate(t); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateTreatment(ctx, t); err != nil {
		return nil, err
	}

	s.record(userID, "treatment_updated", t.ID)
	return t, nil
}

// Delete removes the item from the catalog; visits keep referencing it.
func (s *Service) Delete(ctx context.Context, userID, treatmentID uint) error {
	if _, err := s.get(ctx, userID, treatmentID); err != nil {
		return err
	}

	if err := s.repo.DeleteTreatment(ctx, treatmentID); err != nil {
		return notFound(err)
	}

	s.record(userID, "treatment_deleted", treatmentID)
	return nil
}

func (s *Service) get(ctx context.Context, userID, treatmentID uint) (*models.Treatment, error) {
	t, err := s.repo.GetTreatment(ctx, userID, treatmentID)
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrNotFound("treatment_not_found")
	}
	return err
}

func validate(t *models.Treatment) error {
	switch {
	case t.Name == "":
		return httperr.ErrValidation("name_required")
	case t.DefaultPrice < 0:
		return httperr.ErrValidation("invalid_price")
	case t.IntervalDays != nil && *t.IntervalDays < 1:
		return httperr.ErrValidation("invalid_interval")
	}
	return nil
}
