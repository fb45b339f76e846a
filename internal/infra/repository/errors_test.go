package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain"
)

func TestMapErr(t *testing.T) {
	other := errors.New("connection reset")
	fk := &pgconn.PgError{Code: "23503"}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, domain.ErrNotFound},
		{"wrapped not found", fmt.Errorf("find: %w", gorm.ErrRecordNotFound), domain.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, domain.ErrDuplicate},
		{"translated duplicate", gorm.ErrDuplicatedKey, domain.ErrDuplicate},
		{"fk violation", fk, fk},
		{"other", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapErr(tt.in)
			if got != tt.want {
				t.Fatalf("mapErr(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	if offset(0, 20) != 0 || offset(1, 20) != 0 || offset(3, 20) != 40 {
		t.Fatal("offset arithmetic")
	}
}
