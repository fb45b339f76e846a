package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain/treatment"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type TreatmentGormRepository struct {
	db *gorm.DB
}

var _ treatment.Repository = (*TreatmentGormRepository)(nil)

func NewTreatmentGormRepository(db *gorm.DB) *TreatmentGormRepository {
	return &TreatmentGormRepository{db: db}
}

func (r *TreatmentGormRepository) ListTreatments(
	ctx context.Context,
	userID uint,
	query string,
) ([]models.Treatment, error) {

	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if query = strings.ToLower(strings.TrimSpace(query)); query != "" {
		q = q.Where("LOWER(name) LIKE ?"+likeEscape, likePattern(query))
	}

	var items []models.Treatment
	if err := q.Order("LOWER(name) ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *TreatmentGormRepository) GetTreatment(
	ctx context.Context,
	userID uint,
	treatmentID uint,
) (*models.Treatment, error) {

	var t models.Treatment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", treatmentID, userID).
		First(&t).Error; err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (r *TreatmentGormRepository) GetTreatmentsByIDs(
	ctx context.Context,
	userID uint,
	ids []uint,
) (map[uint]models.Treatment, error) {

	out := make(map[uint]models.Treatment, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var items []models.Treatment
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&items).Error; err != nil {
		return nil, err
	}

	for _, t := range items {
		out[t.ID] = t
	}
	return out, nil
}

func (r *TreatmentGormRepository) CreateTreatment(ctx context.Context, t *models.Treatment) error {
	return mapErr(r.db.WithContext(ctx).Create(t).Error)
}

func (r *TreatmentGormRepository) UpdateTreatment(ctx context.Context, t *models.Treatment) error {
	return mapErr(r.db.WithContext(ctx).Save(t).Error)
}

func (r *TreatmentGormRepository) DeleteTreatment(ctx context.Context, treatmentID uint) error {
	return affected(r.db.WithContext(ctx).Delete(&models.Treatment{}, treatmentID))
}
