package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain/image"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

// ImageGormRepository serves both pet_images and visit_images; the owner
// kind selects the table.
type ImageGormRepository struct {
	db *gorm.DB
}

var _ image.Repository = (*ImageGormRepository)(nil)

func NewImageGormRepository(db *gorm.DB) *ImageGormRepository {
	return &ImageGormRepository{db: db}
}

func ownerColumn(owner image.Owner) (any, string, error) {
	switch owner.Kind {
	case image.OwnerPet:
		return &models.PetImage{}, "pet_id", nil
	case image.OwnerVisit:
		return &models.VisitImage{}, "visit_id", nil
	}
	return nil, "", fmt.Errorf("unknown image owner %q", owner.Kind)
}

func (r *ImageGormRepository) CreateImage(
	ctx context.Context,
	owner image.Owner,
	meta models.ImageMeta,
) (image.Image, error) {

	db := r.db.WithContext(ctx)

	switch owner.Kind {
	case image.OwnerPet:
		row := models.PetImage{PetID: owner.ID, ImageMeta: meta}
		if err := db.Create(&row).Error; err != nil {
			return image.Image{}, mapErr(err)
		}
		return image.Image{ID: row.ID, OwnerID: row.PetID, ImageMeta: row.ImageMeta, CreatedAt: row.CreatedAt}, nil

	case image.OwnerVisit:
		row := models.VisitImage{VisitID: owner.ID, ImageMeta: meta}
		if err := db.Create(&row).Error; err != nil {
			return image.Image{}, mapErr(err)
		}
		return image.Image{ID: row.ID, OwnerID: row.VisitID, ImageMeta: row.ImageMeta, CreatedAt: row.CreatedAt}, nil
	}

	return image.Image{}, fmt.Errorf("unknown image owner %q", owner.Kind)
}

func (r *ImageGormRepository) ListImages(ctx context.Context, owner image.Owner) ([]image.Image, error) {
	db := r.db.WithContext(ctx)

	switch owner.Kind {
	case image.OwnerPet:
		var rows []models.PetImage
		if err := db.Where("pet_id = ?", owner.ID).Order("created_at DESC").Find(&rows).Error; err != nil {
			return nil, err
		}
		return petImages(rows), nil

	case image.OwnerVisit:
		var rows []models.VisitImage
		if err := db.Where("visit_id = ?", owner.ID).Order("created_at DESC").Find(&rows).Error; err != nil {
			return nil, err
		}
		return visitImages(rows), nil
	}

	return nil, fmt.Errorf("unknown image owner %q", owner.Kind)
}

func (r *ImageGormRepository) GetImage(ctx context.Context, owner image.Owner, imageID uint) (image.Image, error) {
	db := r.db.WithContext(ctx)

	switch owner.Kind {
	case image.OwnerPet:
		var row models.PetImage
		if err := db.Where("id = ? AND pet_id = ?", imageID, owner.ID).First(&row).Error; err != nil {
			return image.Image{}, mapErr(err)
		}
		return petImages([]models.PetImage{row})[0], nil

	case image.OwnerVisit:
		var row models.VisitImage
		if err := db.Where("id = ? AND visit_id = ?", imageID, owner.ID).First(&row).Error; err != nil {
			return image.Image{}, mapErr(err)
		}
		return visitImages([]models.VisitImage{row})[0], nil
	}

	return image.Image{}, fmt.Errorf("unknown image owner %q", owner.Kind)
}

func (r *ImageGormRepository) DeleteImage(ctx context.Context, owner image.Owner, imageID uint) error {
	model, column, err := ownerColumn(owner)
	if err != nil {
		return err
	}

	return affected(r.db.WithContext(ctx).
		Where("id = ? AND "+column+" = ?", imageID, owner.ID).
		Delete(model))
}

func petImages(rows []models.PetImage) []image.Image {
	out := make([]image.Image, 0, len(rows))
	for _, row := range rows {
		out = append(out, image.Image{ID: row.ID, OwnerID: row.PetID, ImageMeta: row.ImageMeta, CreatedAt: row.CreatedAt})
	}
	return out
}

func visitImages(rows []models.VisitImage) []image.Image {
	out := make([]image.Image, 0, len(rows))
	for _, row := range rows {
		out = append(out, image.Image{ID: row.ID, OwnerID: row.VisitID, ImageMeta: row.ImageMeta, CreatedAt: row.CreatedAt})
	}
	return out
}
