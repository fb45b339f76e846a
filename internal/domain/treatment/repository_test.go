package treatment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

func TestNextDue(t *testing.T) {
	from := time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC)

	if got := NextDue(from, models.Treatment{}); got != nil {
		t.Fatalf("no interval: got %v, want nil", got)
	}

	zero := 0
	if got := NextDue(from, models.Treatment{IntervalDays: &zero}); got != nil {
		t.Fatalf("zero interval: got %v, want nil", got)
	}

	year := 365
	got := NextDue(from, models.Treatment{IntervalDays: &year})
	if got == nil {
		t.Fatal("yearly interval: got nil")
	}
	if want := time.Date(2027, 1, 31, 10, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("NextDue = %v, want %v", got, want)
	}
}
