package memory

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/pet"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type PetRepo struct{ s *Store }

var _ pet.Repository = (*PetRepo)(nil)

func (r *PetRepo) ListPetsByCustomer(_ context.Context, customerID uint) ([]models.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Pet, 0)
	for id, p := range r.s.pets {
		if p.CustomerID == customerID && live(p.DeletedAt) {
			out = append(out, *r.s.livePet(id))
		}
	}

	sortByNameThenID(out,
		func(p models.Pet) string { return p.Name },
		func(p models.Pet) uint { return p.ID },
	)
	return out, nil
}

func (r *PetRepo) SearchPets(_ context.Context, userID uint, query string, limit int) ([]models.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]models.Pet, 0)
	for id, p := range r.s.pets {
		if !live(p.DeletedAt) {
			continue
		}
		c, ok := r.s.liveCustomerOf(userID, p.CustomerID)
		if !ok {
			continue
		}
		if query != "" &&
			!containsFold(p.Name, query) &&
			!containsFold(p.Species, query) &&
			!containsFold(c.Name, query) {
			continue
		}

		row := *r.s.livePet(id)
		row.Customer = r.s.liveCustomer(c.ID)
		out = append(out, row)
	}

	sortByNameThenID(out,
		func(p models.Pet) string { return p.Name },
		func(p models.Pet) uint { return p.ID },
	)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *PetRepo) CreatePet(_ context.Context, p *models.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p.ID = r.s.nextID()
	p.CreatedAt = r.s.now()
	p.UpdatedAt = p.CreatedAt
	if p.Sex == "" {
		p.Sex = string(pet.SexUnknown)
	}

	row := *p
	row.Customer, row.Images = nil, nil
	r.s.pets[p.ID] = row
	return nil
}

func (r *PetRepo) UpdatePet(_ context.Context, p *models.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.livePet(p.ID) == nil {
		return domain.ErrNotFound
	}

	p.UpdatedAt = r.s.now()
	row := *p
	row.Customer, row.Images = nil, nil
	r.s.pets[p.ID] = row
	return nil
}

func (r *PetRepo) DeletePet(_ context.Context, petID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.livePet(petID) == nil {
		return domain.ErrNotFound
	}
	r.s.deletePetTree(petID)
	return nil
}
