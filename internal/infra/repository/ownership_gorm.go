package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain/ownership"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type OwnershipGormRepository struct {
	db *gorm.DB
}

var _ ownership.Repository = (*OwnershipGormRepository)(nil)

func NewOwnershipGormRepository(db *gorm.DB) *OwnershipGormRepository {
	return &OwnershipGormRepository{db: db}
}

func (r *OwnershipGormRepository) FindCustomer(
	ctx context.Context,
	userID uint,
	customerID uint,
) (*models.Customer, error) {

	var c models.Customer
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", customerID, userID).
		First(&c).Error; err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (r *OwnershipGormRepository) FindPet(
	ctx context.Context,
	customerID uint,
	petID uint,
) (*models.Pet, error) {

	var p models.Pet
	if err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", petID, customerID).
		First(&p).Error; err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *OwnershipGormRepository) FindVisit(
	ctx context.Context,
	customerID uint,
	petID uint,
	visitID uint,
) (*models.Visit, error) {

	var v models.Visit
	if err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ? AND pet_id = ?", visitID, customerID, petID).
		First(&v).Error; err != nil {
		return nil, mapErr(err)
	}
	return &v, nil
}
