package pet

import (
	"context"

	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type Repository interface {
	ListPetsByCustomer(ctx context.Context, customerID uint) ([]models.Pet, error)

	// SearchPets lists the user's pets across customers, with Customer loaded.
	SearchPets(ctx context.Context, userID uint, query string, limit int) ([]models.Pet, error)

	CreatePet(ctx context.Context, p *models.Pet) error
	UpdatePet(ctx context.Context, p *models.Pet) error

	// DeletePet soft-deletes the pet, its images and its visits.
	DeletePet(ctx context.Context, petID uint) error
}
