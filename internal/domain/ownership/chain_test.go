package ownership

import (
	"context"
	"errors"
	"testing"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain"
	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

// fakeRepo stores rows without scoping, so the chain's own checks are tested.
type fakeRepo struct {
	customers map[uint]models.Customer
	pets      map[uint]models.Pet
	visits    map[uint]models.Visit
	err       error
}

func (f *fakeRepo) FindCustomer(_ context.Context, _, id uint) (*models.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (f *fakeRepo) FindPet(_ context.Context, _, id uint) (*models.Pet, error) {
	p, ok := f.pets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (f *fakeRepo) FindVisit(_ context.Context, _, _, id uint) (*models.Visit, error) {
	v, ok := f.visits[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

func newFixture() *fakeRepo {
	return &fakeRepo{
		customers: map[uint]models.Customer{
			1: {ID: 1, UserID: 10},
			2: {ID: 2, UserID: 20},
		},
		pets: map[uint]models.Pet{
			100: {ID: 100, CustomerID: 1},
			200: {ID: 200, CustomerID: 2},
		},
		visits: map[uint]models.Visit{
			1000: {ID: 1000, CustomerID: 1, PetID: 100},
			2000: {ID: 2000, CustomerID: 2, PetID: 200},
			3000: {ID: 3000, CustomerID: 1, PetID: 101},
		},
	}
}

func TestChain_Visit(t *testing.T) {
	chain := NewChain(newFixture())
	ctx := context.Background()

	tests := []struct {
		name                       string
		user, customer, pet, visit uint
		wantCode                   string
	}{
		{"owned chain", 10, 1, 100, 1000, ""},
		{"other user's customer", 10, 2, 200, 2000, "customer_not_found"},
		{"unknown customer", 10, 9, 100, 1000, "customer_not_found"},
		{"pet of another customer", 10, 1, 200, 2000, "pet_not_found"},
		{"visit of another user", 10, 1, 100, 2000, "visit_not_found"},
		{"visit of sibling pet", 10, 1, 100, 3000, "visit_not_found"},
		{"zero visit id", 10, 1, 100, 0, "visit_not_found"},
		{"zero user", 0, 1, 100, 1000, "customer_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, err := chain.Visit(ctx, tt.user, tt.customer, tt.pet, tt.visit)

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				if scope.Customer.ID != tt.customer || scope.Pet.ID != tt.pet || scope.Visit.ID != tt.visit {
					t.Fatalf("scope = %+v", scope)
				}
				return
			}

			if !httperr.IsNotFound(err) || !httperr.IsBusiness(err, tt.wantCode) {
				t.Fatalf("err = %v, want not found %s", err, tt.wantCode)
			}
		})
	}
}

func TestChain_PassesThroughStoreErrors(t *testing.T) {
	repo := newFixture()
	repo.err = errors.New("db down")

	_, err := NewChain(repo).Customer(context.Background(), 10, 1)
	if err == nil || httperr.IsNotFound(err) {
		t.Fatalf("err = %v, want raw store error", err)
	}
}
