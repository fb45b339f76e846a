package dto

import "github.com/BruksfildServices01/vet-backoffice/internal/models"

type PetDetailDTO struct {
	models.Pet
	Images []ImageDTO `json:"images"`
}

type PetSearchItemDTO struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Species      string `json:"species"`
	Breed        string `json:"breed"`
	CustomerID   uint   `json:"customer_id"`
	CustomerName string `json:"customer_name"`
}
