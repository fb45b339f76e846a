package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/audit"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/dashboard"
	"github.com/BruksfildServices01/vet-backoffice/internal/timezone"
)

const (
	UpcomingLimit     = 5
	DueTreatmentLimit = 10
	DueWindow         = 30 * 24 * time.Hour
)

type Service struct {
	repo  dashboard.Repository
	cache dashboard.Cache
	loc   *time.Location
	now   func() time.Time
}

// NewService builds the stats service. cache may be nil, in which case
// stats are computed on every call.
func NewService(repo dashboard.Repository, cache dashboard.Cache, clinicTimezone string) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		loc:   timezone.Location(clinicTimezone),
		now:   time.Now,
	}
}

func (s *Service) Stats(ctx context.Context, userID uint) (*dashboard.Stats, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, userID); ok {
			return cached, nil
		}
	}

	stats, err := s.compute(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, userID, stats)
	}
	return stats, nil
}

func (s *Service) compute(ctx context.Context, userID uint) (*dashboard.Stats, error) {
	now := s.now().In(s.loc)
	monthStart, monthEnd := timezone.MonthRange(now)

	var (
		stats dashboard.Stats
		err   error
	)

	if stats.Customers, err = s.repo.CountCustomers(ctx, userID); err != nil {
		return nil, err
	}
	if stats.Pets, err = s.repo.CountPets(ctx, userID); err != nil {
		return nil, err
	}
	if stats.VisitsScheduled, err = s.repo.CountScheduledVisits(ctx, userID); err != nil {
		return nil, err
	}
	if stats.VisitsCompletedThisMonth, err = s.repo.CountCompletedVisits(ctx, userID, monthStart, monthEnd); err != nil {
		return nil, err
	}
	if stats.RevenueThisMonth, err = s.repo.Revenue(ctx, userID, monthStart, monthEnd); err != nil {
		return nil, err
	}

	upcoming, err := s.repo.UpcomingVisits(ctx, userID, now, UpcomingLimit)
	if err != nil {
		return nil, err
	}
	stats.UpcomingVisits = make([]dashboard.UpcomingVisit, 0, len(upcoming))
	for _, v := range upcoming {
		item := dashboard.UpcomingVisit{
			ID:          v.ID,
			Title:       v.Title,
			ScheduledAt: v.ScheduledAt,
			CustomerID:  v.CustomerID,
			PetID:       v.PetID,
		}
		if v.Customer != nil {
			item.CustomerName = v.Customer.Name
		}
		if v.Pet != nil {
			item.PetName = v.Pet.Name
		}
		stats.UpcomingVisits = append(stats.UpcomingVisits, item)
	}

	dayStart := timezone.DayStart(now)
	due, err := s.repo.DueTreatments(ctx, userID, dayStart, dayStart.Add(DueWindow), DueTreatmentLimit)
	if err != nil {
		return nil, err
	}
	stats.DueTreatments = make([]dashboard.DueTreatment, 0, len(due))
	for _, vt := range due {
		if vt.NextDueAt == nil {
			continue
		}
		item := dashboard.DueTreatment{
			ID:        vt.ID,
			VisitID:   vt.VisitID,
			NextDueAt: *vt.NextDueAt,
		}
		if vt.Treatment != nil {
			item.TreatmentName = vt.Treatment.Name
		}
		if v := vt.Visit; v != nil {
			item.CustomerID, item.PetID = v.CustomerID, v.PetID
			if v.Customer != nil {
				item.CustomerName = v.Customer.Name
			}
			if v.Pet != nil {
				item.PetName = v.Pet.Name
			}
		}
		stats.DueTreatments = append(stats.DueTreatments, item)
	}

	return &stats, nil
}

// CacheInvalidator drops a user's cached stats whenever one of their
// records changes. Register it with Dispatcher.WithInline so the entry is
// gone before the mutating request returns.
type CacheInvalidator struct {
	cache dashboard.Cache
}

var _ audit.Sink = (*CacheInvalidator)(nil)

func NewCacheInvalidator(cache dashboard.Cache) *CacheInvalidator {
	return &CacheInvalidator{cache: cache}
}

func (i *CacheInvalidator) Handle(ctx context.Context, ev audit.Event) error {
	if ev.UserID == 0 || strings.HasPrefix(ev.Action, "user_") {
		return nil
	}
	return i.cache.Invalidate(ctx, ev.UserID)
}
