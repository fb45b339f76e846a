package user

import (
	"context"

	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type Repository interface {
	// CreateUser returns domain.ErrDuplicate when the email is taken.
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}
