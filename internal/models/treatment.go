package models

import (
	"time"

	"gorm.io/gorm"
)

// Treatment is a catalog item (vaccination, deworming, ...) owned by a clinic user.
type Treatment struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Name         string  `gorm:"size:100;not null" json:"name"`
	Description  string  `gorm:"size:255" json:"description"`
	DefaultPrice float64 `gorm:"type:numeric(10,2);not null;default:0" json:"default_price"`
	IntervalDays *int    `json:"interval_days"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
