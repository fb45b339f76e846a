package models

import (
	"time"

	"gorm.io/gorm"
)

type Visit struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint      `gorm:"index;not null" json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer,omitempty"`

	PetID uint `gorm:"index;not null" json:"pet_id"`
	Pet   *Pet `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"pet,omitempty"`

	Status      string `gorm:"size:20;default:'scheduled';index" json:"status"`
	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	ScheduledAt time.Time  `gorm:"index" json:"scheduled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	Treatments []VisitTreatment `json:"treatments,omitempty"`
	Notes      []VisitNote      `json:"notes,omitempty"`
	Images     []VisitImage     `json:"images,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type VisitTreatment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	VisitID uint   `gorm:"index;not null" json:"visit_id"`
	Visit   *Visit `json:"visit,omitempty"`

	TreatmentID uint       `gorm:"index;not null" json:"treatment_id"`
	Treatment   *Treatment `json:"treatment,omitempty"`

	Price     float64    `gorm:"type:numeric(10,2);not null;default:0" json:"price"`
	NextDueAt *time.Time `gorm:"index" json:"next_due_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type VisitNote struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	VisitID uint   `gorm:"index;not null" json:"visit_id"`
	Content string `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
