package dto

import "github.com/BruksfildServices01/vet-backoffice/internal/models"

type CustomerListItemDTO struct {
	models.Customer
	PetCount int64 `json:"pet_count"`
}
