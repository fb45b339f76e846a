package ownership

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain"
	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

// Scope is the verified chain for a request. Fields past the level that was
// resolved are nil.
type Scope struct {
	UserID   uint
	Customer *models.Customer
	Pet      *models.Pet
	Visit    *models.Visit
}

// Chain walks Customer -> Pet -> Visit for the authenticated user. A link
// that is missing or belongs to someone else is reported as not found, so
// callers never learn whether another clinic's record exists.
type Chain struct {
	repo Repository
}

func NewChain(repo Repository) *Chain {
	return &Chain{repo: repo}
}

func (ch *Chain) Customer(ctx context.Context, userID, customerID uint) (*Scope, error) {
	if userID == 0 || customerID == 0 {
		return nil, httperr.ErrNotFound("customer_not_found")
	}

	customer, err := ch.repo.FindCustomer(ctx, userID, customerID)
	if err != nil {
		return nil, notFound(err, "customer_not_found")
	}
	if customer.UserID != userID {
		return nil, httperr.ErrNotFound("customer_not_found")
	}

	return &Scope{UserID: userID, Customer: customer}, nil
}

func (ch *Chain) Pet(ctx context.Context, userID, customerID, petID uint) (*Scope, error) {
	scope, err := ch.Customer(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}
	if petID == 0 {
		return nil, httperr.ErrNotFound("pet_not_found")
	}

	pet, err := ch.repo.FindPet(ctx, customerID, petID)
	if err != nil {
		return nil, notFound(err, "pet_not_found")
	}
	if pet.CustomerID != customerID {
		return nil, httperr.ErrNotFound("pet_not_found")
	}

	scope.Pet = pet
	return scope, nil
}

func (ch *Chain) Visit(ctx context.Context, userID, customerID, petID, visitID uint) (*Scope, error) {
	scope, err := ch.Pet(ctx, userID, customerID, petID)
	if err != nil {
		return nil, err
	}
	if visitID == 0 {
		return nil, httperr.ErrNotFound("visit_not_found")
	}

	visit, err := ch.repo.FindVisit(ctx, customerID, petID, visitID)
	if err != nil {
		return nil, notFound(err, "visit_not_found")
	}
	if visit.CustomerID != customerID || visit.PetID != petID {
		return nil, httperr.ErrNotFound("visit_not_found")
	}

	scope.Visit = visit
	return scope, nil
}

func notFound(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrNotFound(code)
	}
	return err
}
