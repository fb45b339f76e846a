package repository

import (
	"gorm.io/gorm"

	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

// Soft-delete helpers shared by the customer, pet and visit deletes. They
// must run inside the caller's transaction.

func softDeleteVisits(tx *gorm.DB, visitIDs []uint) error {
	if len(visitIDs) == 0 {
		return nil
	}

	for _, child := range []any{
		&models.VisitTreatment{},
		&models.VisitNote{},
		&models.VisitImage{},
	} {
		if err := tx.Where("visit_id IN ?", visitIDs).Delete(child).Error; err != nil {
			return err
		}
	}

	return tx.Where("id IN ?", visitIDs).Delete(&models.Visit{}).Error
}

func softDeletePets(tx *gorm.DB, petIDs []uint) error {
	if len(petIDs) == 0 {
		return nil
	}

	var visitIDs []uint
	if err := tx.Model(&models.Visit{}).
		Where("pet_id IN ?", petIDs).
		Pluck("id", &visitIDs).Error; err != nil {
		return err
	}
	if err := softDeleteVisits(tx, visitIDs); err != nil {
		return err
	}

	if err := tx.Where("pet_id IN ?", petIDs).Delete(&models.PetImage{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", petIDs).Delete(&models.Pet{}).Error
}
