// Package storage holds the object-key rules of the presigned upload flow
// and the ObjectStore contract implemented by the S3 adapter.
package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
)

const (
	UploadURLTTL   = 15 * time.Minute
	DownloadURLTTL = time.Hour
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/tiff": ".tiff",
	"image/bmp":  ".bmp",
}

// NormalizeContentType lower-cases ct and drops any parameters.
func NormalizeContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

func IsAllowedContentType(ct string) bool {
	_, ok := extensions[NormalizeContentType(ct)]
	return ok
}

func ExtensionFor(ct string) string {
	return extensions[NormalizeContentType(ct)]
}

func AllowedContentTypes() []string {
	return []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/tiff", "image/bmp"}
}

func PetPrefix(userID, customerID, petID uint) string {
	return fmt.Sprintf("users/%d/customers/%d/pets/%d/", userID, customerID, petID)
}

func VisitPrefix(userID, customerID, petID, visitID uint) string {
	return PetPrefix(userID, customerID, petID) + fmt.Sprintf("visits/%d/", visitID)
}

// NewObjectKey returns prefix + random uuid + the extension of contentType.
func NewObjectKey(prefix, contentType string) (string, error) {
	ext := ExtensionFor(contentType)
	if ext == "" {
		return "", httperr.ErrValidation("unsupported_content_type")
	}
	return prefix + uuid.NewString() + ext, nil
}

// ValidateKey checks that key lives directly under prefix: the remainder
// must be one non-empty path segment without traversal or backslashes.
func ValidateKey(prefix, key string) error {
	if prefix == "" || !strings.HasPrefix(key, prefix) {
		return httperr.ErrBusiness("invalid_storage_key")
	}

	name := key[len(prefix):]
	switch {
	case name == "",
		strings.Contains(name, "/"),
		strings.Contains(name, `\`),
		strings.Contains(name, ".."):
		return httperr.ErrBusiness("invalid_storage_key")
	}

	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return httperr.ErrBusiness("invalid_storage_key")
		}
	}
	return nil
}
