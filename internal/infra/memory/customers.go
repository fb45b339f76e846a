package memory

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/customer"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type CustomerRepo struct{ s *Store }

var _ customer.Repository = (*CustomerRepo)(nil)

func (r *CustomerRepo) ListCustomers(_ context.Context, f customer.ListFilter) ([]models.Customer, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]models.Customer, 0)
	for _, c := range r.s.customers {
		if c.UserID != f.UserID || !live(c.DeletedAt) {
			continue
		}
		if query != "" &&
			!containsFold(c.Name, query) &&
			!containsFold(c.Email, query) &&
			!strings.Contains(c.Phone, query) {
			continue
		}
		out = append(out, c)
	}

	sortByNameThenID(out,
		func(c models.Customer) string { return c.Name },
		func(c models.Customer) uint { return c.ID },
	)
	return page(out, f.Page, f.Limit), int64(len(out)), nil
}

func (r *CustomerRepo) CountPets(_ context.Context, customerIDs []uint) (map[uint]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	want := make(map[uint]bool, len(customerIDs))
	for _, id := range customerIDs {
		want[id] = true
	}

	out := make(map[uint]int64, len(customerIDs))
	for _, p := range r.s.pets {
		if want[p.CustomerID] && live(p.DeletedAt) {
			out[p.CustomerID]++
		}
	}
	return out, nil
}

func (r *CustomerRepo) CreateCustomer(_ context.Context, c *models.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c.ID = r.s.nextID()
	c.CreatedAt = r.s.now()
	c.UpdatedAt = c.CreatedAt

	row := *c
	row.Pets = nil
	r.s.customers[c.ID] = row
	return nil
}

func (r *CustomerRepo) UpdateCustomer(_ context.Context, c *models.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if cur, ok := r.s.customers[c.ID]; !ok || !live(cur.DeletedAt) {
		return domain.ErrNotFound
	}

	c.UpdatedAt = r.s.now()
	row := *c
	row.Pets = nil
	r.s.customers[c.ID] = row
	return nil
}

func (r *CustomerRepo) DeleteCustomer(_ context.Context, customerID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.customers[customerID]
	if !ok || !live(c.DeletedAt) {
		return domain.ErrNotFound
	}

	for id, p := range r.s.pets {
		if p.CustomerID == customerID && live(p.DeletedAt) {
			r.s.deletePetTree(id)
		}
	}

	c.DeletedAt = r.s.deletedNow()
	r.s.customers[customerID] = c
	return nil
}
