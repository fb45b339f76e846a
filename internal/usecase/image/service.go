package image

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/vet-backoffice/internal/audit"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain"
	imagedomain "github.com/BruksfildServices01/vet-backoffice/internal/domain/image"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/ownership"
	"github.com/BruksfildServices01/vet-backoffice/internal/dto"
	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
	"github.com/BruksfildServices01/vet-backoffice/internal/storage"
)

// Target is the pet (VisitID zero) or visit an image belongs to.
type Target struct {
	UserID     uint
	CustomerID uint
	PetID      uint
	VisitID    uint
}

type Options struct {
	MaxBytes     int64
	ProbeEnabled bool
	ProbeBytes   int64
}

type Service struct {
	chain *ownership.Chain
	repo  imagedomain.Repository
	store storage.ObjectStore
	audit *audit.Dispatcher
	opts  Options
}

func NewService(
	chain *ownership.Chain,
	repo imagedomain.Repository,
	store storage.ObjectStore,
	audit *audit.Dispatcher,
	opts Options,
) *Service {
	return &Service{chain: chain, repo: repo, store: store, audit: audit, opts: opts}
}

// resolve verifies the ownership chain and returns the image owner and the
// key prefix objects for it must live under.
func (s *Service) resolve(ctx context.Context, t Target) (imagedomain.Owner, string, error) {
	if t.VisitID == 0 {
		if _, err := s.chain.Pet(ctx, t.UserID, t.CustomerID, t.PetID); err != nil {
			return imagedomain.Owner{}, "", err
		}
		return imagedomain.Owner{Kind: imagedomain.OwnerPet, ID: t.PetID},
			storage.PetPrefix(t.UserID, t.CustomerID, t.PetID), nil
	}

	if _, err := s.chain.Visit(ctx, t.UserID, t.CustomerID, t.PetID, t.VisitID); err != nil {
		return imagedomain.Owner{}, "", err
	}
	return imagedomain.Owner{Kind: imagedomain.OwnerVisit, ID: t.VisitID},
		storage.VisitPrefix(t.UserID, t.CustomerID, t.PetID, t.VisitID), nil
}

func (s *Service) record(t Target, owner imagedomain.Owner, action string, id uint, meta map[string]any) {
	if meta == nil {
		meta = map[string]any{}
	}
	meta["owner"] = string(owner.Kind)
	meta["owner_id"] = owner.ID

	s.audit.Dispatch(audit.Event{
		UserID:   t.UserID,
		Action:   action,
		Entity:   string(owner.Kind) + "_image",
		EntityID: &id,
		Metadata: meta,
	})
}

// UploadURL presigns a PUT for a fresh key under the target's prefix.
func (s *Service) UploadURL(ctx context.Context, t Target, contentType, fileName string) (*dto.UploadURLDTO, error) {
	_, prefix, err := s.resolve(ctx, t)
	if err != nil {
		return nil, err
	}

	contentType = storage.NormalizeContentType(contentType)
	key, err := storage.NewObjectKey(prefix, contentType)
	if err != nil {
		return nil, err
	}

	req, err := s.store.PresignPut(ctx, key, contentType, storage.UploadURLTTL)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("key", key).
		Str("file_name", strings.TrimSpace(fileName)).
		Msg("upload url issued")

	return &dto.UploadURLDTO{
		UploadURL: req.URL,
		Method:    req.Method,
		Key:       key,
		ExpiresAt: req.ExpiresAt,
		Headers:   req.Headers,
	}, nil
}

// Register records an uploaded object. The key is checked against the
// target's prefix again and the object must exist with acceptable metadata.
func (s *Service) Register(ctx context.Context, t Target, key string) (*dto.ImageDTO, error) {
	owner, prefix, err := s.resolve(ctx, t)
	if err != nil {
		return nil, err
	}

	if err := storage.ValidateKey(prefix, key); err != nil {
		return nil, err
	}

	info, err := s.store.Head(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, httperr.ErrBusiness("upload_not_found")
		}
		return nil, err
	}

	contentType := storage.NormalizeContentType(info.ContentType)
	if !storage.IsAllowedContentType(contentType) ||
		info.Size <= 0 ||
		(s.opts.MaxBytes > 0 && info.Size > s.opts.MaxBytes) {
		return nil, httperr.ErrBusiness("invalid_upload")
	}

	meta := models.ImageMeta{
		StorageKey:  key,
		ContentType: contentType,
		SizeBytes:   info.Size,
	}
	s.probe(ctx, &meta)

	img, err := s.repo.CreateImage(ctx, owner, meta)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, httperr.ErrConflict("image_already_registered")
		}
		return nil, err
	}

	s.record(t, owner, "image_registered", img.ID, map[string]any{"key": key, "size_bytes": info.Size})

	out := s.toDTO(ctx, img)
	return &out, nil
}

// probe fills width and height from the object's first bytes. Failures
// leave the dimensions empty.
func (s *Service) probe(ctx context.Context, meta *models.ImageMeta) {
	if !s.opts.ProbeEnabled || s.opts.ProbeBytes <= 0 {
		return
	}

	head, err := s.store.ReadHead(ctx, meta.StorageKey, s.opts.ProbeBytes)
	if err != nil {
		log.Warn().Err(err).Str("key", meta.StorageKey).Msg("image probe read failed")
		return
	}

	dim, _, err := storage.Probe(head)
	if err != nil {
		log.Warn().Err(err).Str("key", meta.StorageKey).Msg("image probe failed")
		return
	}

	meta.Width = &dim.Width
	meta.Height = &dim.Height
}

func (s *Service) List(ctx context.Context, t Target) ([]dto.ImageDTO, error) {
	owner, _, err := s.resolve(ctx, t)
	if err != nil {
		return nil, err
	}

	images, err := s.repo.ListImages(ctx, owner)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ImageDTO, 0, len(images))
	for _, img := range images {
		out = append(out, s.toDTO(ctx, img))
	}
	return out, nil
}

// Delete removes the object first, best effort, then the row.
func (s *Service) Delete(ctx context.Context, t Target, imageID uint) error {
	owner, _, err := s.resolve(ctx, t)
	if err != nil {
		return err
	}

	img, err := s.repo.GetImage(ctx, owner, imageID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrNotFound("image_not_found")
		}
		return err
	}

	if err := s.store.Delete(ctx, img.StorageKey); err != nil {
		log.Warn().Err(err).Str("key", img.StorageKey).Msg("object delete failed, removing record anyway")
	}

	if err := s.repo.DeleteImage(ctx, owner, imageID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrNotFound("image_not_found")
		}
		return err
	}

	s.record(t, owner, "image_deleted", imageID, map[string]any{"key": img.StorageKey})
	return nil
}

func (s *Service) toDTO(ctx context.Context, img imagedomain.Image) dto.ImageDTO {
	out := dto.ImageDTO{
		ID:          img.ID,
		Key:         img.StorageKey,
		ContentType: img.ContentType,
		SizeBytes:   img.SizeBytes,
		Width:       img.Width,
		Height:      img.Height,
		CreatedAt:   img.CreatedAt,
	}

	req, err := s.store.PresignGet(ctx, img.StorageKey, storage.DownloadURLTTL)
	if err != nil {
		log.Warn().Err(err).Str("key", img.StorageKey).Msg("presign get failed")
		return out
	}
	out.URL = req.URL
	out.URLExpires = req.ExpiresAt
	return out
}
