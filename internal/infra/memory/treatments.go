package memory

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/treatment"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type TreatmentRepo struct{ s *Store }

var _ treatment.Repository = (*TreatmentRepo)(nil)

func (r *TreatmentRepo) ListTreatments(_ context.Context, userID uint, query string) ([]models.Treatment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]models.Treatment, 0)
	for _, t := range r.s.treatments {
		if t.UserID != userID || !live(t.DeletedAt) {
			continue
		}
		if query != "" && !containsFold(t.Name, query) {
			continue
		}
		out = append(out, t)
	}

	sortByNameThenID(out,
		func(t models.Treatment) string { return t.Name },
		func(t models.Treatment) uint { return t.ID },
	)
	return out, nil
}

func (r *TreatmentRepo) GetTreatment(_ context.Context, userID, treatmentID uint) (*models.Treatment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.treatments[treatmentID]
	if !ok || !live(t.DeletedAt) || t.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r *TreatmentRepo) GetTreatmentsByIDs(_ context.Context, userID uint, ids []uint) (map[uint]models.Treatment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(map[uint]models.Treatment, len(ids))
	for _, id := range ids {
		if t, ok := r.s.treatments[id]; ok && live(t.DeletedAt) && t.UserID == userID {
			out[id] = t
		}
	}
	return out, nil
}

func (r *TreatmentRepo) CreateTreatment(_ context.Context, t *models.Treatment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t.ID = r.s.nextID()
	t.CreatedAt = r.s.now()
	t.UpdatedAt = t.CreatedAt
	r.s.treatments[t.ID] = *t
	return nil
}

func (r *TreatmentRepo) UpdateTreatment(_ context.Context, t *models.Treatment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if cur, ok := r.s.treatments[t.ID]; !ok || !live(cur.DeletedAt) {
		return domain.ErrNotFound
	}
	t.UpdatedAt = r.s.now()
	r.s.treatments[t.ID] = *t
	return nil
}

func (r *TreatmentRepo) DeleteTreatment(_ context.Context, treatmentID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.treatments[treatmentID]
	if !ok || !live(t.DeletedAt) {
		return domain.ErrNotFound
	}
	t.DeletedAt = r.s.deletedNow()
	r.s.treatments[treatmentID] = t
	return nil
}
