package models

import (
	"time"

	"gorm.io/gorm"
)

type Pet struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"index;not null" json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer,omitempty"`

	Name      string     `gorm:"size:100;not null" json:"name"`
	Species   string     `gorm:"size:50;not null" json:"species"`
	Breed     string     `gorm:"size:100" json:"breed"`
	Sex       string     `gorm:"size:10;default:'unknown'" json:"sex"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date"`
	WeightKg  *float64   `gorm:"type:numeric(6,2)" json:"weight_kg"`
	Notes     string     `gorm:"type:text" json:"notes"`

	Images []PetImage `json:"images,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
