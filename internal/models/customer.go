package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is a pet owner, scoped to the clinic user that registered it.
type Customer struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Name    string `gorm:"size:120;not null" json:"name"`
	Email   string `gorm:"size:160" json:"email"`
	Phone   string `gorm:"size:40" json:"phone"`
	Address string `gorm:"size:255" json:"address"`
	Notes   string `gorm:"type:text" json:"notes"`

	Pets []Pet `json:"pets,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
