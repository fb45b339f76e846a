package customer

import (
	"context"

	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type ListFilter struct {
	UserID uint
	Query  string
	Page   int
	Limit  int
}

type Repository interface {
	ListCustomers(ctx context.Context, f ListFilter) ([]models.Customer, int64, error)

	// CountPets returns the number of live pets per customer id.
	CountPets(ctx context.Context, customerIDs []uint) (map[uint]int64, error)

	CreateCustomer(ctx context.Context, c *models.Customer) error
	UpdateCustomer(ctx context.Context, c *models.Customer) error

	// DeleteCustomer soft-deletes the customer together with its pets,
	// their visits and everything attached to those visits.
	DeleteCustomer(ctx context.Context, customerID uint) error
}
