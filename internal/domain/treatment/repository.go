package treatment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type Repository interface {
	ListTreatments(ctx context.Context, userID uint, query string) ([]models.Treatment, error)
	GetTreatment(ctx context.Context, userID, treatmentID uint) (*models.Treatment, error)

	// GetTreatmentsByIDs returns the user's live catalog items among ids, keyed by id.
	GetTreatmentsByIDs(ctx context.Context, userID uint, ids []uint) (map[uint]models.Treatment, error)

	CreateTreatment(ctx context.Context, t *models.Treatment) error
	UpdateTreatment(ctx context.Context, t *models.Treatment) error
	DeleteTreatment(ctx context.Context, treatmentID uint) error
}

// NextDue is from plus the catalog interval, or nil when the item has none.
func NextDue(from time.Time, t models.Treatment) *time.Time {
	if t.IntervalDays == nil || *t.IntervalDays <= 0 {
		return nil
	}
	due := from.AddDate(0, 0, *t.IntervalDays)
	return &due
}
