package visit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type ListFilter struct {
	UserID     uint
	CustomerID uint
	PetID      uint
	Status     Status
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}

type Repository interface {
	// -------- Visit --------

	// ListVisits returns the user's visits, newest scheduled_at first, with
	// Customer and Pet loaded.
	ListVisits(ctx context.Context, f ListFilter) ([]models.Visit, int64, error)

	// GetVisitDetail loads the visit with treatments (and their catalog
	// item), notes and images.
	GetVisitDetail(ctx context.Context, visitID uint) (*models.Visit, error)

	// CreateVisit inserts v together with v.Treatments and v.Notes in one
	// transaction.
	CreateVisit(ctx context.Context, v *models.Visit) error

	UpdateVisit(ctx context.Context, v *models.Visit) error

	// DeleteVisit soft-deletes the visit and its treatments, notes and images.
	DeleteVisit(ctx context.Context, visitID uint) error

	// -------- Visit treatments --------
	ListVisitTreatments(ctx context.Context, visitID uint) ([]models.VisitTreatment, error)
	GetVisitTreatment(ctx context.Context, visitID, id uint) (*models.VisitTreatment, error)
	CreateVisitTreatment(ctx context.Context, vt *models.VisitTreatment) error
	UpdateVisitTreatment(ctx context.Context, vt *models.VisitTreatment) error
	DeleteVisitTreatment(ctx context.Context, visitID, id uint) error

	// -------- Visit notes --------
	ListVisitNotes(ctx context.Context, visitID uint) ([]models.VisitNote, error)
	GetVisitNote(ctx context.Context, visitID, id uint) (*models.VisitNote, error)
	CreateVisitNote(ctx context.Context, n *models.VisitNote) error
	UpdateVisitNote(ctx context.Context, n *models.VisitNote) error
	DeleteVisitNote(ctx context.Context, visitID, id uint) error
}
