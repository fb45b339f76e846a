package customer

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/vet-backoffice/internal/audit"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain"
	customerdomain "github.com/BruksfildServices01/vet-backoffice/internal/domain/customer"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/ownership"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/pet"
	"github.com/BruksfildServices01/vet-backoffice/internal/dto"
	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type CreateInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Notes   string
}

type UpdateInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Notes   *string
}

type Service struct {
	chain *ownership.Chain
	repo  customerdomain.Repository
	pets  pet.Repository
	audit *audit.Dispatcher
}

func NewService(
	chain *ownership.Chain,
	repo customerdomain.Repository,
	pets pet.Repository,
	audit *audit.Dispatcher,
) *Service {
	return &Service{chain: chain, repo: repo, pets: pets, audit: audit}
}

func (s *Service) record(userID uint, action string, id uint) {
	s.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   action,
		Entity:   "customer",
		EntityID: &id,
	})
}

// List returns one page of the user's customers with their live pet count.
func (s *Service) List(
	ctx context.Context,
	f customerdomain.ListFilter,
) ([]dto.CustomerListItemDTO, int64, error) {

	customers, total, err := s.repo.ListCustomers(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, 0, len(customers))
	for _, c := range customers {
		ids = append(ids, c.ID)
	}

	counts, err := s.repo.CountPets(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.CustomerListItemDTO, 0, len(customers))
	for _, c := range customers {
		out = append(out, dto.CustomerListItemDTO{Customer: c, PetCount: counts[c.ID]})
	}
	return out, total, nil
}

func (s *Service) Create(ctx context.Context, userID uint, in CreateInput) (*models.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrValidation("name_required")
	}

	c := &models.Customer{
		UserID:  userID,
		Name:    name,
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
		Notes:   strings.TrimSpace(in.Notes),
	}
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	s.record(userID, "customer_created", c.ID)
	return c, nil
}

// Get returns the customer with its live pets.
func (s *Service) Get(ctx context.Context, userID, customerID uint) (*models.Customer, error) {
	scope, err := s.chain.Customer(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}

	pets, err := s.pets.ListPetsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	c := scope.Customer
	c.Pets = pets
	if c.Pets == nil {
		c.Pets = []models.Pet{}
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, userID, customerID uint, in UpdateInput) (*models.Customer, error) {
	scope, err := s.chain.Customer(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}
	c := scope.Customer

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrValidation("name_required")
		}
		c.Name = name
	}
	if in.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}
	if in.Notes != nil {
		c.Notes = strings.TrimSpace(*in.Notes)
	}

	if err := s.repo.UpdateCustomer(ctx, c); err != nil {
		return nil, err
	}

	s.record(userID, "customer_updated", c.ID)
	return c, nil
}

// Delete soft-deletes the customer and everything under it.
func (s *Service) Delete(ctx context.Context, userID, customerID uint) error {
	if _, err := s.chain.Customer(ctx, userID, customerID); err != nil {
		return err
	}

	if err := s.repo.DeleteCustomer(ctx, customerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrNotFound("customer_not_found")
		}
		return err
	}

	s.record(userID, "customer_deleted", customerID)
	return nil
}
