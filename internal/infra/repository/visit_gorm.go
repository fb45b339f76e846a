package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain/visit"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type VisitGormRepository struct {
	db *gorm.DB
}

var _ visit.Repository = (*VisitGormRepository)(nil)

func NewVisitGormRepository(db *gorm.DB) *VisitGormRepository {
	return &VisitGormRepository{db: db}
}

// catalog items stay readable on visits after they leave the catalog
func withDeletedTreatment(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}

// --------------------------------------------------
// Visit
// --------------------------------------------------

func (r *VisitGormRepository) ListVisits(
	ctx context.Context,
	f visit.ListFilter,
) ([]models.Visit, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Joins("JOIN customers ON customers.id = visits.customer_id AND customers.deleted_at IS NULL").
		Where("customers.user_id = ?", f.UserID)

	if f.CustomerID != 0 {
		q = q.Where("visits.customer_id = ?", f.CustomerID)
	}
	if f.PetID != 0 {
		q = q.Where("visits.pet_id = ?", f.PetID)
	}
	if f.Status != "" {
		q = q.Where("visits.status = ?", string(f.Status))
	}
	if f.From != nil {
		q = q.Where("visits.scheduled_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("visits.scheduled_at < ?", *f.To)
	}

	// count and page from separate statements built on the same filters
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var visits []models.Visit
	if err := q.
		Select("visits.*").
		Preload("Customer").
		Preload("Pet").
		Order("visits.scheduled_at DESC, visits.id DESC").
		Limit(f.Limit).
		Offset(offset(f.Page, f.Limit)).
		Find(&visits).Error; err != nil {
		return nil, 0, err
	}

	return visits, total, nil
}

func (r *VisitGormRepository) GetVisitDetail(ctx context.Context, visitID uint) (*models.Visit, error) {
	var v models.Visit
	if err := r.db.WithContext(ctx).
		Preload("Treatments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Treatments.Treatment", withDeletedTreatment).
		Preload("Notes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		First(&v, visitID).Error; err != nil {
		return nil, mapErr(err)
	}
	return &v, nil
}

// CreateVisit writes the visit and its treatments and notes atomically.
func (r *VisitGormRepository) CreateVisit(ctx context.Context, v *models.Visit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(v).Error; err != nil {
			return mapErr(err)
		}

		for i := range v.Treatments {
			v.Treatments[i].VisitID = v.ID
			if err := tx.Omit(clause.Associations).Create(&v.Treatments[i]).Error; err != nil {
				return mapErr(err)
			}
		}

		for i := range v.Notes {
			v.Notes[i].VisitID = v.ID
			if err := tx.Omit(clause.Associations).Create(&v.Notes[i]).Error; err != nil {
				return mapErr(err)
			}
		}

		return nil
	})
}

func (r *VisitGormRepository) UpdateVisit(ctx context.Context, v *models.Visit) error {
	return mapErr(r.db.WithContext(ctx).Omit(clause.Associations).Save(v).Error)
}

func (r *VisitGormRepository) DeleteVisit(ctx context.Context, visitID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Visit{}).Where("id = ?", visitID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return mapErr(gorm.ErrRecordNotFound)
		}
		return softDeleteVisits(tx, []uint{visitID})
	})
}

// --------------------------------------------------
// Visit treatments
// --------------------------------------------------

func (r *VisitGormRepository) ListVisitTreatments(ctx context.Context, visitID uint) ([]models.VisitTreatment, error) {
	var items []models.VisitTreatment
	if err := r.db.WithContext(ctx).
		Preload("Treatment", withDeletedTreatment).
		Where("visit_id = ?", visitID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *VisitGormRepository) GetVisitTreatment(ctx context.Context, visitID, id uint) (*models.VisitTreatment, error) {
	var vt models.VisitTreatment
	if err := r.db.WithContext(ctx).
		Preload("Treatment", withDeletedTreatment).
		Where("id = ? AND visit_id = ?", id, visitID).
		First(&vt).Error; err != nil {
		return nil, mapErr(err)
	}
	return &vt, nil
}

func (r *VisitGormRepository) CreateVisitTreatment(ctx context.Context, vt *models.VisitTreatment) error {
	return mapErr(r.db.WithContext(ctx).Omit(clause.Associations).Create(vt).Error)
}

func (r *VisitGormRepository) UpdateVisitTreatment(ctx context.Context, vt *models.VisitTreatment) error {
	return mapErr(r.db.WithContext(ctx).Omit(clause.Associations).Save(vt).Error)
}

func (r *VisitGormRepository) DeleteVisitTreatment(ctx context.Context, visitID, id uint) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ? AND visit_id = ?", id, visitID).
		Delete(&models.VisitTreatment{}))
}

// --------------------------------------------------
// Visit notes
// --------------------------------------------------

func (r *VisitGormRepository) ListVisitNotes(ctx context.Context, visitID uint) ([]models.VisitNote, error) {
	var notes []models.VisitNote
	if err := r.db.WithContext(ctx).
		Where("visit_id = ?", visitID).
		Order("created_at ASC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *VisitGormRepository) GetVisitNote(ctx context.Context, visitID, id uint) (*models.VisitNote, error) {
	var n models.VisitNote
	if err := r.db.WithContext(ctx).
		Where("id = ? AND visit_id = ?", id, visitID).
		First(&n).Error; err != nil {
		return nil, mapErr(err)
	}
	return &n, nil
}

func (r *VisitGormRepository) CreateVisitNote(ctx context.Context, n *models.VisitNote) error {
	return mapErr(r.db.WithContext(ctx).Create(n).Error)
}

func (r *VisitGormRepository) UpdateVisitNote(ctx context.Context, n *models.VisitNote) error {
	return mapErr(r.db.WithContext(ctx).Save(n).Error)
}

func (r *VisitGormRepository) DeleteVisitNote(ctx context.Context, visitID, id uint) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ? AND visit_id = ?", id, visitID).
		Delete(&models.VisitNote{}))
}
