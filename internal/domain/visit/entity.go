package visit

import (
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(v *models.Visit, now time.Time) error {
	if err := CanCancel(Status(v.Status)); err != nil {
		return err
	}

	v.Status = string(StatusCancelled)
	v.CancelledAt = &now
	return nil
}

func Complete(v *models.Visit, now time.Time) error {
	if err := CanComplete(Status(v.Status)); err != nil {
		return err
	}

	v.Status = string(StatusCompleted)
	v.CompletedAt = &now
	return nil
}
