package dto

import (
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type VisitListItemDTO struct {
	ID          uint       `json:"id"`
	Status      string     `json:"status"`
	Title       string     `json:"title"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CustomerID   uint   `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	PetID        uint   `json:"pet_id"`
	PetName      string `json:"pet_name"`
	PetSpecies   string `json:"pet_species"`
}

// VisitDetailDTO replaces the stored image rows with presigned views.
type VisitDetailDTO struct {
	models.Visit
	Images []ImageDTO `json:"images"`
}
