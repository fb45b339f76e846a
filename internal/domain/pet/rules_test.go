package pet

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
)

func TestNormalizeSex(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "unknown", false},
		{" Female ", "female", false},
		{"MALE", "male", false},
		{"other", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeSex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("NormalizeSex(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("NormalizeSex(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseBirthDate(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	if d, err := ParseBirthDate("", now); err != nil || d != nil {
		t.Fatalf("empty: got %v, %v", d, err)
	}

	d, err := ParseBirthDate("2020-02-29", now)
	if err != nil {
		t.Fatalf("valid date: %v", err)
	}
	if d.Year() != 2020 || d.Month() != time.February || d.Day() != 29 {
		t.Fatalf("parsed = %v", d)
	}

	if _, err := ParseBirthDate("29/02/2020", now); !httperr.IsBusiness(err, "invalid_date") {
		t.Fatalf("bad format err = %v", err)
	}
	if _, err := ParseBirthDate("2030-01-01", now); !httperr.IsBusiness(err, "birth_date_in_future") {
		t.Fatalf("future err = %v", err)
	}
}
