package visit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain/ownership"
	domain "github.com/BruksfildServices01/vet-backoffice/internal/domain/visit"
	"github.com/BruksfildServices01/vet-backoffice/internal/dto"
	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
)

type ListVisitsInput struct {
	UserID uint

	// CustomerID and PetID narrow the listing to one pet; both or neither.
	CustomerID uint
	PetID      uint

	Status string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

type ListVisits struct {
	chain *ownership.Chain
	repo  domain.Repository
}

func NewListVisits(chain *ownership.Chain, repo domain.Repository) *ListVisits {
	return &ListVisits{chain: chain, repo: repo}
}

func (uc *ListVisits) Execute(
	ctx context.Context,
	in ListVisitsInput,
) ([]dto.VisitListItemDTO, int64, error) {

	if in.PetID != 0 {
		if _, err := uc.chain.Pet(ctx, in.UserID, in.CustomerID, in.PetID); err != nil {
			return nil, 0, err
		}
	}

	status := domain.Status(in.Status)
	if status != "" && !status.Valid() {
		return nil, 0, httperr.ErrValidation("invalid_status")
	}

	visits, total, err := uc.repo.ListVisits(ctx, domain.ListFilter{
		UserID:     in.UserID,
		CustomerID: in.CustomerID,
		PetID:      in.PetID,
		Status:     status,
		From:       in.From,
		To:         in.To,
		Page:       in.Page,
		Limit:      in.Limit,
	})
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.VisitListItemDTO, 0, len(visits))
	for _, v := range visits {
		item := dto.VisitListItemDTO{
			ID:          v.ID,
			Status:      v.Status,
			Title:       v.Title,
			ScheduledAt: v.ScheduledAt,
			CompletedAt: v.CompletedAt,
			CancelledAt: v.CancelledAt,
			CustomerID:  v.CustomerID,
			PetID:       v.PetID,
		}
		if v.Customer != nil {
			item.CustomerName = v.Customer.Name
		}
		if v.Pet != nil {
			item.PetName = v.Pet.Name
			item.PetSpecies = v.Pet.Species
		}
		out = append(out, item)
	}

	return out, total, nil
}
