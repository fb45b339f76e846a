package visit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/audit"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/ownership"
	domain "github.com/BruksfildServices01/vet-backoffice/internal/domain/visit"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type CompleteVisit struct {
	chain *ownership.Chain
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCompleteVisit(
	chain *ownership.Chain,
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteVisit {
	return &CompleteVisit{
		chain: chain,
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *CompleteVisit) Execute(ctx context.Context, ref Ref) (*models.Visit, error) {
	scope, err := uc.chain.Visit(ctx, ref.UserID, ref.CustomerID, ref.PetID, ref.VisitID)
	if err != nil {
		return nil, err
	}

	v := scope.Visit
	if err := domain.Complete(v, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateVisit(ctx, v); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   ref.UserID,
		Action:   "visit_completed",
		Entity:   "visit",
		EntityID: entityID(v.ID),
	})

	return v, nil
}
