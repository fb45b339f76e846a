package visit

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

func TestComplete(t *testing.T) {
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  Status
		wantErr bool
	}{
		{"scheduled", StatusScheduled, false},
		{"already completed", StatusCompleted, true},
		{"cancelled", StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &models.Visit{Status: string(tt.status)}
			err := Complete(v, now)

			if tt.wantErr {
				if !httperr.IsBusiness(err, "invalid_state") {
					t.Fatalf("err = %v, want invalid_state", err)
				}
				if v.Status != string(tt.status) || v.CompletedAt != nil {
					t.Fatalf("visit mutated on rejected transition: %+v", v)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if v.Status != string(StatusCompleted) || v.CompletedAt == nil || !v.CompletedAt.Equal(now) {
				t.Fatalf("visit = %+v", v)
			}
		})
	}
}

func TestCancel(t *testing.T) {
	now := time.Now()

	v := &models.Visit{Status: string(StatusScheduled)}
	if err := Cancel(v, now); err != nil {
		t.Fatalf("cancel scheduled: %v", err)
	}
	if v.Status != string(StatusCancelled) || v.CancelledAt == nil {
		t.Fatalf("visit = %+v", v)
	}

	if err := Cancel(v, now); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("second cancel err = %v", err)
	}
}

func TestInitialStatus(t *testing.T) {
	if s, err := InitialStatus(""); err != nil || s != StatusScheduled {
		t.Fatalf("empty: %v %v", s, err)
	}
	if s, err := InitialStatus("completed"); err != nil || s != StatusCompleted {
		t.Fatalf("completed: %v %v", s, err)
	}
	if _, err := InitialStatus("cancelled"); !httperr.IsBusiness(err, "invalid_status") {
		t.Fatalf("cancelled err = %v", err)
	}
	if _, err := InitialStatus("bogus"); err == nil {
		t.Fatal("bogus status accepted")
	}
}
