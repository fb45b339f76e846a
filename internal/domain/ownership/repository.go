package ownership

import (
	"context"

	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

// Repository looks up each link of the customer -> pet -> visit chain
// scoped to its parent. Soft-deleted rows are reported as domain.ErrNotFound.
type Repository interface {
	FindCustomer(ctx context.Context, userID, customerID uint) (*models.Customer, error)
	FindPet(ctx context.Context, customerID, petID uint) (*models.Pet, error)
	FindVisit(ctx context.Context, customerID, petID, visitID uint) (*models.Visit, error)
}
