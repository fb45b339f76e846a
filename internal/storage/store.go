package storage

import (
	"context"
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("object not found")

type PresignedRequest struct {
	URL       string
	Method    string
	Headers   map[string]string
	ExpiresAt time.Time
}

type ObjectInfo struct {
	Size        int64
	ContentType string
}

// ObjectStore is the bucket the API presigns for. Image bytes never pass
// through the API except for the bounded ReadHead used by the probe.
type ObjectStore interface {
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (PresignedRequest, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration) (PresignedRequest, error)

	// Head returns ErrObjectNotFound when no object exists at key.
	Head(ctx context.Context, key string) (ObjectInfo, error)

	// ReadHead returns at most n leading bytes of the object.
	ReadHead(ctx context.Context, key string, n int64) ([]byte, error)

	Delete(ctx context.Context, key string) error
}
