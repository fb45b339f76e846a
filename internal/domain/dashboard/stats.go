package dashboard

import (
	"context"
	"time"
)

type UpcomingVisit struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	CustomerID   uint      `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	PetID        uint      `json:"pet_id"`
	PetName      string    `json:"pet_name"`
}

type DueTreatment struct {
	ID            uint      `json:"id"`
	VisitID       uint      `json:"visit_id"`
	TreatmentName string    `json:"treatment_name"`
	NextDueAt     time.Time `json:"next_due_at"`
	CustomerID    uint      `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	PetID         uint      `json:"pet_id"`
	PetName       string    `json:"pet_name"`
}

type Stats struct {
	Customers                int64           `json:"customers"`
	Pets                     int64           `json:"pets"`
	VisitsScheduled          int64           `json:"visits_scheduled"`
	VisitsCompletedThisMonth int64           `json:"visits_completed_this_month"`
	RevenueThisMonth         float64         `json:"revenue_this_month"`
	UpcomingVisits           []UpcomingVisit `json:"upcoming_visits"`
	DueTreatments            []DueTreatment  `json:"due_treatments"`
}

// Cache keeps computed stats per user for a short time.
type Cache interface {
	Get(ctx context.Context, userID uint) (*Stats, bool)
	Set(ctx context.Context, userID uint, stats *Stats)
	Invalidate(ctx context.Context, userID uint) error
}
