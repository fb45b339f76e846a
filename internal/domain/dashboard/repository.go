package dashboard

import (
	"context"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

// Repository aggregates over the user's live (not soft-deleted) records.
type Repository interface {
	CountCustomers(ctx context.Context, userID uint) (int64, error)
	CountPets(ctx context.Context, userID uint) (int64, error)
	CountScheduledVisits(ctx context.Context, userID uint) (int64, error)
	CountCompletedVisits(ctx context.Context, userID uint, from, to time.Time) (int64, error)

	// Revenue sums treatment prices of visits completed in [from, to).
	Revenue(ctx context.Context, userID uint, from, to time.Time) (float64, error)

	// UpcomingVisits lists scheduled visits at or after from, soonest first,
	// with Customer and Pet loaded.
	UpcomingVisits(ctx context.Context, userID uint, from time.Time, limit int) ([]models.Visit, error)

	// DueTreatments lists visit treatments with next_due_at in [from, to),
	// soonest first, with Treatment, Visit.Pet and Visit.Customer loaded.
	DueTreatments(ctx context.Context, userID uint, from, to time.Time, limit int) ([]models.VisitTreatment, error)
}
