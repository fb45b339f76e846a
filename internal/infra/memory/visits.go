package memory

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/visit"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type VisitRepo struct{ s *Store }

var _ visit.Repository = (*VisitRepo)(nil)

func stripVisit(v models.Visit) models.Visit {
	v.Customer, v.Pet = nil, nil
	v.Treatments, v.Notes, v.Images = nil, nil, nil
	return v
}

func (r *VisitRepo) liveVisit(id uint) (models.Visit, bool) {
	v, ok := r.s.visits[id]
	if !ok || !live(v.DeletedAt) {
		return models.Visit{}, false
	}
	return v, true
}

// withTreatment attaches the catalog item, soft-deleted or not.
func (r *VisitRepo) withTreatment(vt models.VisitTreatment) models.VisitTreatment {
	vt.Visit = nil
	if t, ok := r.s.treatments[vt.TreatmentID]; ok {
		vt.Treatment = &t
	}
	return vt
}

// -------- Visit --------

func (r *VisitRepo) ListVisits(_ context.Context, f visit.ListFilter) ([]models.Visit, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Visit, 0)
	for _, v := range r.s.visits {
		if !live(v.DeletedAt) {
			continue
		}
		if _, ok := r.s.liveCustomerOf(f.UserID, v.CustomerID); !ok {
			continue
		}
		if f.CustomerID != 0 && v.CustomerID != f.CustomerID {
			continue
		}
		if f.PetID != 0 && v.PetID != f.PetID {
			continue
		}
		if f.Status != "" && v.Status != string(f.Status) {
			continue
		}
		if f.From != nil && v.ScheduledAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !v.ScheduledAt.Before(*f.To) {
			continue
		}

		v.Customer = r.s.liveCustomer(v.CustomerID)
		v.Pet = r.s.livePet(v.PetID)
		out = append(out, v)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.After(out[j].ScheduledAt)
		}
		return out[i].ID > out[j].ID
	})
	return page(out, f.Page, f.Limit), int64(len(out)), nil
}

func (r *VisitRepo) GetVisitDetail(_ context.Context, visitID uint) (*models.Visit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.liveVisit(visitID)
	if !ok {
		return nil, domain.ErrNotFound
	}

	v.Treatments = r.treatmentsOf(visitID)
	v.Notes = r.notesOf(visitID)

	v.Images = make([]models.VisitImage, 0)
	for _, img := range r.s.visitImages {
		if img.VisitID == visitID && live(img.DeletedAt) {
			v.Images = append(v.Images, img)
		}
	}
	sort.SliceStable(v.Images, func(i, j int) bool { return v.Images[i].ID > v.Images[j].ID })

	return &v, nil
}

func (r *VisitRepo) CreateVisit(_ context.Context, v *models.Visit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	v.ID = r.s.nextID()
	v.CreatedAt, v.UpdatedAt = now, now

	for i := range v.Treatments {
		vt := &v.Treatments[i]
		vt.ID = r.s.nextID()
		vt.VisitID = v.ID
		vt.CreatedAt, vt.UpdatedAt = now, now

		row := *vt
		row.Treatment, row.Visit = nil, nil
		r.s.visitTreatments[vt.ID] = row
	}

	for i := range v.Notes {
		n := &v.Notes[i]
		n.ID = r.s.nextID()
		n.VisitID = v.ID
		n.CreatedAt, n.UpdatedAt = now, now
		r.s.visitNotes[n.ID] = *n
	}

	r.s.visits[v.ID] = stripVisit(*v)
	return nil
}

func (r *VisitRepo) UpdateVisit(_ context.Context, v *models.Visit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.liveVisit(v.ID); !ok {
		return domain.ErrNotFound
	}
	v.UpdatedAt = r.s.now()
	r.s.visits[v.ID] = stripVisit(*v)
	return nil
}

func (r *VisitRepo) DeleteVisit(_ context.Context, visitID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.liveVisit(visitID); !ok {
		return domain.ErrNotFound
	}
	r.s.deleteVisitTree(visitID)
	return nil
}

// -------- Visit treatments --------

func (r *VisitRepo) treatmentsOf(visitID uint) []models.VisitTreatment {
	out := make([]models.VisitTreatment, 0)
	for _, vt := range r.s.visitTreatments {
		if vt.VisitID == visitID && live(vt.DeletedAt) {
			out = append(out, r.withTreatment(vt))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *VisitRepo) ListVisitTreatments(_ context.Context, visitID uint) ([]models.VisitTreatment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.treatmentsOf(visitID), nil
}

func (r *VisitRepo) GetVisitTreatment(_ context.Context, visitID, id uint) (*models.VisitTreatment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	vt, ok := r.s.visitTreatments[id]
	if !ok || !live(vt.DeletedAt) || vt.VisitID != visitID {
		return nil, domain.ErrNotFound
	}
	vt = r.withTreatment(vt)
	return &vt, nil
}

func (r *VisitRepo) CreateVisitTreatment(_ context.Context, vt *models.VisitTreatment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	vt.ID = r.s.nextID()
	vt.CreatedAt = r.s.now()
	vt.UpdatedAt = vt.CreatedAt

	row := *vt
	row.Treatment, row.Visit = nil, nil
	r.s.visitTreatments[vt.ID] = row
	return nil
}

func (r *VisitRepo) UpdateVisitTreatment(_ context.Context, vt *models.VisitTreatment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.visitTreatments[vt.ID]
	if !ok || !live(cur.DeletedAt) {
		return domain.ErrNotFound
	}
	vt.UpdatedAt = r.s.now()

	row := *vt
	row.Treatment, row.Visit = nil, nil
	r.s.visitTreatments[vt.ID] = row
	return nil
}

func (r *VisitRepo) DeleteVisitTreatment(_ context.Context, visitID, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	vt, ok := r.s.visitTreatments[id]
	if !ok || !live(vt.DeletedAt) || vt.VisitID != visitID {
		return domain.ErrNotFound
	}
	vt.DeletedAt = r.s.deletedNow()
	r.s.visitTreatments[id] = vt
	return nil
}

// -------- Visit notes --------

func (r *VisitRepo) notesOf(visitID uint) []models.VisitNote {
	out := make([]models.VisitNote, 0)
	for _, n := range r.s.visitNotes {
		if n.VisitID == visitID && live(n.DeletedAt) {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *VisitRepo) ListVisitNotes(_ context.Context, visitID uint) ([]models.VisitNote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.notesOf(visitID), nil
}

func (r *VisitRepo) GetVisitNote(_ context.Context, visitID, id uint) (*models.VisitNote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n, ok := r.s.visitNotes[id]
	if !ok || !live(n.DeletedAt) || n.VisitID != visitID {
		return nil, domain.ErrNotFound
	}
	return &n, nil
}

func (r *VisitRepo) CreateVisitNote(_ context.Context, n *models.VisitNote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n.ID = r.s.nextID()
	n.CreatedAt = r.s.now()
	n.UpdatedAt = n.CreatedAt
	r.s.visitNotes[n.ID] = *n
	return nil
}

func (r *VisitRepo) UpdateVisitNote(_ context.Context, n *models.VisitNote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.visitNotes[n.ID]
	if !ok || !live(cur.DeletedAt) {
		return domain.ErrNotFound
	}
	n.UpdatedAt = r.s.now()
	r.s.visitNotes[n.ID] = *n
	return nil
}

func (r *VisitRepo) DeleteVisitNote(_ context.Context, visitID, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.visitNotes[id]
	if !ok || !live(n.DeletedAt) || n.VisitID != visitID {
		return domain.ErrNotFound
	}
	n.DeletedAt = r.s.deletedNow()
	r.s.visitNotes[id] = n
	return nil
}
