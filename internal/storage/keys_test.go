package storage

import (
	"strings"
	"testing"

	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
)

func TestPrefixes(t *testing.T) {
	if got := PetPrefix(1, 2, 3); got != "users/1/customers/2/pets/3/" {
		t.Fatalf("PetPrefix = %q", got)
	}
	if got := VisitPrefix(1, 2, 3, 4); got != "users/1/customers/2/pets/3/visits/4/" {
		t.Fatalf("VisitPrefix = %q", got)
	}
}

func TestNewObjectKey(t *testing.T) {
	prefix := PetPrefix(7, 8, 9)

	key, err := NewObjectKey(prefix, "image/PNG; charset=binary")
	if err != nil {
		t.Fatalf("NewObjectKey: %v", err)
	}
	if !strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, ".png") {
		t.Fatalf("key = %q", key)
	}
	if err := ValidateKey(prefix, key); err != nil {
		t.Fatalf("generated key rejected: %v", err)
	}

	other, _ := NewObjectKey(prefix, "image/png")
	if other == key {
		t.Fatal("keys are not unique")
	}

	if _, err := NewObjectKey(prefix, "application/pdf"); !httperr.IsBusiness(err, "unsupported_content_type") {
		t.Fatalf("pdf err = %v", err)
	}
}

func TestValidateKey(t *testing.T) {
	prefix := VisitPrefix(1, 2, 3, 4)

	tests := []struct {
		name string
		key  string
		ok   bool
	}{
		{"valid", prefix + "abc.jpg", true},
		{"other visit", VisitPrefix(1, 2, 3, 5) + "abc.jpg", false},
		{"other user", VisitPrefix(9, 2, 3, 4) + "abc.jpg", false},
		{"pet prefix for visit", PetPrefix(1, 2, 3) + "abc.jpg", false},
		{"empty name", prefix, false},
		{"nested", prefix + "x/abc.jpg", false},
		{"traversal", prefix + "..abc.jpg", false},
		{"escape", prefix + "../../5/abc.jpg", false},
		{"backslash", prefix + `a\b.jpg`, false},
		{"control char", prefix + "a\nb.jpg", false},
		{"no prefix", "abc.jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(prefix, tt.key)
			if tt.ok && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if !tt.ok && !httperr.IsBusiness(err, "invalid_storage_key") {
				t.Fatalf("err = %v, want invalid_storage_key", err)
			}
		})
	}
}

func TestAllowedContentTypes(t *testing.T) {
	for _, ct := range AllowedContentTypes() {
		if !IsAllowedContentType(ct) || ExtensionFor(ct) == "" {
			t.Errorf("%s should be allowed", ct)
		}
	}
	if IsAllowedContentType("image/svg+xml") {
		t.Error("svg must not be allowed")
	}
}
