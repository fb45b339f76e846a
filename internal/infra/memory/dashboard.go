package memory

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain/dashboard"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type DashboardRepo struct{ s *Store }

var _ dashboard.Repository = (*DashboardRepo)(nil)

func inRange(t *time.Time, from, to time.Time) bool {
	return t != nil && !t.Before(from) && t.Before(to)
}

// userVisits returns the live visits under the user's live customers.
func (r *DashboardRepo) userVisits(userID uint) []models.Visit {
	out := make([]models.Visit, 0)
	for _, v := range r.s.visits {
		if !live(v.DeletedAt) {
			continue
		}
		if _, ok := r.s.liveCustomerOf(userID, v.CustomerID); ok {
			out = append(out, v)
		}
	}
	return out
}

func (r *DashboardRepo) CountCustomers(_ context.Context, userID uint) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, c := range r.s.customers {
		if c.UserID == userID && live(c.DeletedAt) {
			n++
		}
	}
	return n, nil
}

func (r *DashboardRepo) CountPets(_ context.Context, userID uint) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, p := range r.s.pets {
		if !live(p.DeletedAt) {
			continue
		}
		if _, ok := r.s.liveCustomerOf(userID, p.CustomerID); ok {
			n++
		}
	}
	return n, nil
}

func (r *DashboardRepo) CountScheduledVisits(_ context.Context, userID uint) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, v := range r.userVisits(userID) {
		if v.Status == "scheduled" {
			n++
		}
	}
	return n, nil
}

func (r *DashboardRepo) CountCompletedVisits(_ context.Context, userID uint, from, to time.Time) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, v := range r.userVisits(userID) {
		if v.Status == "completed" && inRange(v.CompletedAt, from, to) {
			n++
		}
	}
	return n, nil
}

func (r *DashboardRepo) Revenue(_ context.Context, userID uint, from, to time.Time) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	completed := make(map[uint]bool)
	for _, v := range r.userVisits(userID) {
		if v.Status == "completed" && inRange(v.CompletedAt, from, to) {
			completed[v.ID] = true
		}
	}

	var total float64
	for _, vt := range r.s.visitTreatments {
		if live(vt.DeletedAt) && completed[vt.VisitID] {
			total += vt.Price
		}
	}
	return total, nil
}

func (r *DashboardRepo) UpcomingVisits(_ context.Context, userID uint, from time.Time, limit int) ([]models.Visit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Visit, 0)
	for _, v := range r.userVisits(userID) {
		if v.Status == "scheduled" && !v.ScheduledAt.Before(from) {
			v.Customer = r.s.liveCustomer(v.CustomerID)
			v.Pet = r.s.livePet(v.PetID)
			out = append(out, v)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *DashboardRepo) DueTreatments(_ context.Context, userID uint, from, to time.Time, limit int) ([]models.VisitTreatment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	visits := make(map[uint]models.Visit)
	for _, v := range r.userVisits(userID) {
		if v.Status != "cancelled" {
			visits[v.ID] = v
		}
	}

	out := make([]models.VisitTreatment, 0)
	for _, vt := range r.s.visitTreatments {
		v, ok := visits[vt.VisitID]
		if !ok || !live(vt.DeletedAt) || !inRange(vt.NextDueAt, from, to) {
			continue
		}

		if t, ok := r.s.treatments[vt.TreatmentID]; ok {
			vt.Treatment = &t
		}
		v.Customer = r.s.liveCustomer(v.CustomerID)
		v.Pet = r.s.livePet(v.PetID)
		vt.Visit = &v
		out = append(out, vt)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].NextDueAt.Before(*out[j].NextDueAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
