package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain/customer"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

var _ customer.Repository = (*CustomerGormRepository)(nil)

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

func (r *CustomerGormRepository) ListCustomers(
	ctx context.Context,
	f customer.ListFilter,
) ([]models.Customer, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("user_id = ?", f.UserID)

	if query := strings.ToLower(strings.TrimSpace(f.Query)); query != "" {
		like := likePattern(query)
		q = q.Where(
			"LOWER(name) LIKE ?"+likeEscape+" OR LOWER(email) LIKE ?"+likeEscape+" OR phone LIKE ?"+likeEscape,
			like, like, like,
		)
	}

	// count and page from separate statements built on the same filters
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []models.Customer
	if err := q.
		Order("LOWER(name) ASC, id ASC").
		Limit(f.Limit).
		Offset(offset(f.Page, f.Limit)).
		Find(&customers).Error; err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

func (r *CustomerGormRepository) CountPets(
	ctx context.Context,
	customerIDs []uint,
) (map[uint]int64, error) {

	out := make(map[uint]int64, len(customerIDs))
	if len(customerIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		CustomerID uint
		Count      int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Pet{}).
		Select("customer_id, COUNT(*) AS count").
		Where("customer_id IN ?", customerIDs).
		Group("customer_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.CustomerID] = row.Count
	}
	return out, nil
}

func (r *CustomerGormRepository) CreateCustomer(ctx context.Context, c *models.Customer) error {
	return mapErr(r.db.WithContext(ctx).Omit("Pets").Create(c).Error)
}

func (r *CustomerGormRepository) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	return mapErr(r.db.WithContext(ctx).Omit("Pets").Save(c).Error)
}

func (r *CustomerGormRepository) DeleteCustomer(ctx context.Context, customerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var petIDs []uint
		if err := tx.Model(&models.Pet{}).
			Where("customer_id = ?", customerID).
			Pluck("id", &petIDs).Error; err != nil {
			return err
		}
		if err := softDeletePets(tx, petIDs); err != nil {
			return err
		}

		return affected(tx.Delete(&models.Customer{}, customerID))
	})
}
