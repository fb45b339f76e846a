package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain/dashboard"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

const (
	joinVisitCustomer  = "JOIN customers ON customers.id = visits.customer_id AND customers.deleted_at IS NULL"
	joinPetCustomer    = "JOIN customers ON customers.id = pets.customer_id AND customers.deleted_at IS NULL"
	joinTreatmentVisit = "JOIN visits ON visits.id = visit_treatments.visit_id AND visits.deleted_at IS NULL"
)

type DashboardGormRepository struct {
	db *gorm.DB
}

var _ dashboard.Repository = (*DashboardGormRepository)(nil)

func NewDashboardGormRepository(db *gorm.DB) *DashboardGormRepository {
	return &DashboardGormRepository{db: db}
}

func (r *DashboardGormRepository) CountCustomers(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}

func (r *DashboardGormRepository) CountPets(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Pet{}).
		Joins(joinPetCustomer).
		Where("customers.user_id = ?", userID).
		Count(&n).Error
	return n, err
}

func (r *DashboardGormRepository) visits(ctx context.Context, userID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Joins(joinVisitCustomer).
		Where("customers.user_id = ?", userID)
}

func (r *DashboardGormRepository) CountScheduledVisits(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.visits(ctx, userID).
		Where("visits.status = ?", "scheduled").
		Count(&n).Error
	return n, err
}

func (r *DashboardGormRepository) CountCompletedVisits(
	ctx context.Context,
	userID uint,
	from, to time.Time,
) (int64, error) {

	var n int64
	err := r.visits(ctx, userID).
		Where("visits.status = ? AND visits.completed_at >= ? AND visits.completed_at < ?", "completed", from, to).
		Count(&n).Error
	return n, err
}

func (r *DashboardGormRepository) Revenue(
	ctx context.Context,
	userID uint,
	from, to time.Time,
) (float64, error) {

	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.VisitTreatment{}).
		Select("COALESCE(SUM(visit_treatments.price), 0)").
		Joins(joinTreatmentVisit).
		Joins(joinVisitCustomer).
		Where("customers.user_id = ?", userID).
		Where("visits.status = ? AND visits.completed_at >= ? AND visits.completed_at < ?", "completed", from, to).
		Scan(&total).Error
	return total, err
}

func (r *DashboardGormRepository) UpcomingVisits(
	ctx context.Context,
	userID uint,
	from time.Time,
	limit int,
) ([]models.Visit, error) {

	var out []models.Visit
	err := r.visits(ctx, userID).
		Where("visits.status = ? AND visits.scheduled_at >= ?", "scheduled", from).
		Preload("Customer").
		Preload("Pet").
		Order("visits.scheduled_at ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// DueTreatments skips treatments recorded on cancelled visits.
func (r *DashboardGormRepository) DueTreatments(
	ctx context.Context,
	userID uint,
	from, to time.Time,
	limit int,
) ([]models.VisitTreatment, error) {

	var out []models.VisitTreatment
	err := r.db.WithContext(ctx).
		Model(&models.VisitTreatment{}).
		Joins(joinTreatmentVisit).
		Joins(joinVisitCustomer).
		Where("customers.user_id = ?", userID).
		Where("visits.status <> ?", "cancelled").
		Where("visit_treatments.next_due_at >= ? AND visit_treatments.next_due_at < ?", from, to).
		Preload("Treatment", withDeletedTreatment).
		Preload("Visit.Customer").
		Preload("Visit.Pet").
		Order("visit_treatments.next_due_at ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
