package visit

import "github.com/BruksfildServices01/vet-backoffice/internal/httperr"

// ===============================
// Visit Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

// CanCancel: only scheduled visits can be cancelled.
func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete: only scheduled visits can be completed.
func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus resolves the status a new visit is created with. Visits can
// be recorded after the fact as completed, never as cancelled.
func InitialStatus(requested string) (Status, error) {
	if requested == "" {
		return StatusScheduled, nil
	}
	switch s := Status(requested); s {
	case StatusScheduled, StatusCompleted:
		return s, nil
	}
	return "", httperr.ErrValidation("invalid_status")
}
