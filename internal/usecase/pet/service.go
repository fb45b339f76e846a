package pet

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/audit"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/ownership"
	petdomain "github.com/BruksfildServices01/vet-backoffice/internal/domain/pet"
	"github.com/BruksfildServices01/vet-backoffice/internal/dto"
	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

const SearchLimit = 50

type CreateInput struct {
	Name      string
	Species   string
	Breed     string
	Sex       string
	BirthDate string
	WeightKg  *float64
	Notes     string
}

type UpdateInput struct {
	Name      *string
	Species   *string
	Breed     *string
	Sex       *string
	BirthDate *string
	WeightKg  *float64
	Notes     *string

	// explicit nulls; the matching value field is ignored
	ClearBirthDate bool
	ClearWeight    bool
}

type Service struct {
	chain *ownership.Chain
	repo  petdomain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewService(chain *ownership.Chain, repo petdomain.Repository, audit *audit.Dispatcher) *Service {
	return &Service{chain: chain, repo: repo, audit: audit, now: time.Now}
}

func (s *Service) record(userID uint, action string, id uint, meta any) {
	s.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   action,
		Entity:   "pet",
		EntityID: &id,
		Metadata: meta,
	})
}

func (s *Service) List(ctx context.Context, userID, customerID uint) ([]models.Pet, error) {
	if _, err := s.chain.Customer(ctx, userID, customerID); err != nil {
		return nil, err
	}
	return s.repo.ListPetsByCustomer(ctx, customerID)
}

// Search looks across all of the user's customers, for pet pickers.
func (s *Service) Search(ctx context.Context, userID uint, query string) ([]dto.PetSearchItemDTO, error) {
	pets, err := s.repo.SearchPets(ctx, userID, query, SearchLimit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PetSearchItemDTO, 0, len(pets))
	for _, p := range pets {
		item := dto.PetSearchItemDTO{
			ID:         p.ID,
			Name:       p.Name,
			Species:    p.Species,
			Breed:      p.Breed,
			CustomerID: p.CustomerID,
		}
		if p.Customer != nil {
			item.CustomerName = p.Customer.Name
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, userID, customerID uint, in CreateInput) (*models.Pet, error) {
	if _, err := s.chain.Customer(ctx, userID, customerID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	species := strings.TrimSpace(in.Species)
	if name == "" || species == "" {
		return nil, httperr.ErrValidation("name_and_species_required")
	}

	sex, err := petdomain.NormalizeSex(in.Sex)
	if err != nil {
		return nil, err
	}
	birth, err := petdomain.ParseBirthDate(in.BirthDate, s.now())
	if err != nil {
		return nil, err
	}
	if err := validWeight(in.WeightKg); err != nil {
		return nil, err
	}

	p := &models.Pet{
		CustomerID: customerID,
		Name:       name,
		Species:    species,
		Breed:      strings.TrimSpace(in.Breed),
		Sex:        sex,
		BirthDate:  birth,
		WeightKg:   in.WeightKg,
		Notes:      strings.TrimSpace(in.Notes),
	}
	if err := s.repo.CreatePet(ctx, p); err != nil {
		return nil, err
	}

	s.record(userID, "pet_created", p.ID, map[string]any{"customer_id": customerID})
	return p, nil
}

func (s *Service) Get(ctx context.Context, userID, customerID, petID uint) (*models.Pet, error) {
	scope, err := s.chain.Pet(ctx, userID, customerID, petID)
	if err != nil {
		return nil, err
	}
	return scope.Pet, nil
}

func (s *Service) Update(ctx context.Context, userID, customerID, petID uint, in UpdateInput) (*models.Pet, error) {
	scope, err := s.chain.Pet(ctx, userID, customerID, petID)
	if err != nil {
		return nil, err
	}
	p := scope.Pet

	if in.Name != nil {
		if p.Name = strings.TrimSpace(*in.Name); p.Name == "" {
			return nil, httperr.ErrValidation("name_and_species_required")
		}
	}
	if in.Species != nil {
		if p.Species = strings.TrimSpace(*in.Species); p.Species == "" {
			return nil, httperr.ErrValidation("name_and_species_required")
		}
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		if p.Sex, err = petdomain.NormalizeSex(*in.Sex); err != nil {
			return nil, err
		}
	}
	switch {
	case in.ClearBirthDate:
		p.BirthDate = nil
	case in.BirthDate != nil:
		if p.BirthDate, err = petdomain.ParseBirthDate(*in.BirthDate, s.now()); err != nil {
			return nil, err
		}
	}
	switch {
	case in.ClearWeight:
		p.WeightKg = nil
	case in.WeightKg != nil:
		if err := validWeight(in.WeightKg); err != nil {
			return nil, err
		}
		p.WeightKg = in.WeightKg
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}

	if err := s.repo.UpdatePet(ctx, p); err != nil {
		return nil, err
	}

	s.record(userID, "pet_updated", p.ID, nil)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, userID, customerID, petID uint) error {
	if _, err := s.chain.Pet(ctx, userID, customerID, petID); err != nil {
		return err
	}

	if err := s.repo.DeletePet(ctx, petID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrNotFound("pet_not_found")
		}
		return err
	}

	s.record(userID, "pet_deleted", petID, nil)
	return nil
}

func validWeight(w *float64) error {
	if w != nil && *w < 0 {
		return httperr.ErrValidation("invalid_weight")
	}
	return nil
}
