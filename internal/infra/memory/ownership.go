package memory

import (
	"context"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/ownership"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type OwnershipRepo struct{ s *Store }

var _ ownership.Repository = (*OwnershipRepo)(nil)

func (r *OwnershipRepo) FindCustomer(_ context.Context, userID, customerID uint) (*models.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.liveCustomerOf(userID, customerID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *OwnershipRepo) FindPet(_ context.Context, customerID, petID uint) (*models.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p := r.s.livePet(petID)
	if p == nil || p.CustomerID != customerID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *OwnershipRepo) FindVisit(_ context.Context, customerID, petID, visitID uint) (*models.Visit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.visits[visitID]
	if !ok || !live(v.DeletedAt) || v.CustomerID != customerID || v.PetID != petID {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}
