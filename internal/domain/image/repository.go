package image

import (
	"context"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type OwnerKind string

const (
	OwnerPet   OwnerKind = "pet"
	OwnerVisit OwnerKind = "visit"
)

// Owner identifies the row an image hangs off: a pet or a visit.
type Owner struct {
	Kind OwnerKind
	ID   uint
}

type Image struct {
	ID      uint
	OwnerID uint
	models.ImageMeta
	CreatedAt time.Time
}

type Repository interface {
	// CreateImage returns domain.ErrDuplicate when the key is already registered.
	CreateImage(ctx context.Context, owner Owner, meta models.ImageMeta) (Image, error)
	ListImages(ctx context.Context, owner Owner) ([]Image, error)
	GetImage(ctx context.Context, owner Owner, imageID uint) (Image, error)
	DeleteImage(ctx context.Context, owner Owner, imageID uint) error
}
