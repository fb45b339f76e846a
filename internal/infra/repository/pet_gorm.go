package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain/pet"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type PetGormRepository struct {
	db *gorm.DB
}

var _ pet.Repository = (*PetGormRepository)(nil)

func NewPetGormRepository(db *gorm.DB) *PetGormRepository {
	return &PetGormRepository{db: db}
}

func (r *PetGormRepository) ListPetsByCustomer(ctx context.Context, customerID uint) ([]models.Pet, error) {
	var pets []models.Pet
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("LOWER(name) ASC, id ASC").
		Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *PetGormRepository) SearchPets(
	ctx context.Context,
	userID uint,
	query string,
	limit int,
) ([]models.Pet, error) {

	q := r.db.WithContext(ctx).
		Joins("JOIN customers ON customers.id = pets.customer_id AND customers.deleted_at IS NULL").
		Where("customers.user_id = ?", userID)

	if query = strings.ToLower(strings.TrimSpace(query)); query != "" {
		like := likePattern(query)
		q = q.Where(
			"LOWER(pets.name) LIKE ?"+likeEscape+" OR LOWER(pets.species) LIKE ?"+likeEscape+" OR LOWER(customers.name) LIKE ?"+likeEscape,
			like, like, like,
		)
	}

	var pets []models.Pet
	if err := q.
		Preload("Customer").
		Order("LOWER(pets.name) ASC, pets.id ASC").
		Limit(limit).
		Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *PetGormRepository) CreatePet(ctx context.Context, p *models.Pet) error {
	return mapErr(r.db.WithContext(ctx).Omit("Customer", "Images").Create(p).Error)
}

func (r *PetGormRepository) UpdatePet(ctx context.Context, p *models.Pet) error {
	return mapErr(r.db.WithContext(ctx).Omit("Customer", "Images").Save(p).Error)
}

func (r *PetGormRepository) DeletePet(ctx context.Context, petID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Pet{}).Where("id = ?", petID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return mapErr(gorm.ErrRecordNotFound)
		}
		return softDeletePets(tx, []uint{petID})
	})
}
