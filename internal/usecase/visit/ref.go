package visit

import (
	"time"
)

// Ref addresses one visit through its ownership chain.
type Ref struct {
	UserID     uint
	CustomerID uint
	PetID      uint
	VisitID    uint
}

type TreatmentInput struct {
	TreatmentID uint
	Price       *float64
	NextDueAt   *time.Time
}

func entityID(id uint) *uint {
	return &id
}
