package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/image"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type ImageRepo struct{ s *Store }

var _ image.Repository = (*ImageRepo)(nil)

// keyTaken mirrors the unique index on storage_key, which soft-deleted
// rows still occupy.
func (r *ImageRepo) keyTaken(key string) bool {
	for _, img := range r.s.petImages {
		if img.StorageKey == key {
			return true
		}
	}
	for _, img := range r.s.visitImages {
		if img.StorageKey == key {
			return true
		}
	}
	return false
}

func (r *ImageRepo) CreateImage(_ context.Context, owner image.Owner, meta models.ImageMeta) (image.Image, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.keyTaken(meta.StorageKey) {
		return image.Image{}, domain.ErrDuplicate
	}

	id := r.s.nextID()
	now := r.s.now()

	switch owner.Kind {
	case image.OwnerPet:
		r.s.petImages[id] = models.PetImage{ID: id, PetID: owner.ID, ImageMeta: meta, CreatedAt: now, UpdatedAt: now}
	case image.OwnerVisit:
		r.s.visitImages[id] = models.VisitImage{ID: id, VisitID: owner.ID, ImageMeta: meta, CreatedAt: now, UpdatedAt: now}
	default:
		return image.Image{}, fmt.Errorf("unknown image owner %q", owner.Kind)
	}

	return image.Image{ID: id, OwnerID: owner.ID, ImageMeta: meta, CreatedAt: now}, nil
}

func (r *ImageRepo) collect(owner image.Owner) []image.Image {
	out := make([]image.Image, 0)

	switch owner.Kind {
	case image.OwnerPet:
		for _, img := range r.s.petImages {
			if img.PetID == owner.ID && live(img.DeletedAt) {
				out = append(out, image.Image{ID: img.ID, OwnerID: img.PetID, ImageMeta: img.ImageMeta, CreatedAt: img.CreatedAt})
			}
		}
	case image.OwnerVisit:
		for _, img := range r.s.visitImages {
			if img.VisitID == owner.ID && live(img.DeletedAt) {
				out = append(out, image.Image{ID: img.ID, OwnerID: img.VisitID, ImageMeta: img.ImageMeta, CreatedAt: img.CreatedAt})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *ImageRepo) ListImages(_ context.Context, owner image.Owner) ([]image.Image, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(owner), nil
}

func (r *ImageRepo) GetImage(_ context.Context, owner image.Owner, imageID uint) (image.Image, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, img := range r.collect(owner) {
		if img.ID == imageID {
			return img, nil
		}
	}
	return image.Image{}, domain.ErrNotFound
}

func (r *ImageRepo) DeleteImage(_ context.Context, owner image.Owner, imageID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	switch owner.Kind {
	case image.OwnerPet:
		img, ok := r.s.petImages[imageID]
		if !ok || !live(img.DeletedAt) || img.PetID != owner.ID {
			return domain.ErrNotFound
		}
		img.DeletedAt = r.s.deletedNow()
		r.s.petImages[imageID] = img
	case image.OwnerVisit:
		img, ok := r.s.visitImages[imageID]
		if !ok || !live(img.DeletedAt) || img.VisitID != owner.ID {
			return domain.ErrNotFound
		}
		img.DeletedAt = r.s.deletedNow()
		r.s.visitImages[imageID] = img
	default:
		return fmt.Errorf("unknown image owner %q", owner.Kind)
	}
	return nil
}
