package models

import (
	"time"

	"gorm.io/gorm"
)

// ImageMeta is the part of an image row shared by pet and visit images.
type ImageMeta struct {
	StorageKey  string `gorm:"size:512;uniqueIndex;not null" json:"key"`
	ContentType string `gorm:"size:50" json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	Width       *int   `json:"width"`
	Height      *int   `json:"height"`
}

type PetImage struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	PetID uint `gorm:"index;not null" json:"pet_id"`

	ImageMeta `gorm:"embedded"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type VisitImage struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	VisitID uint `gorm:"index;not null" json:"visit_id"`

	ImageMeta `gorm:"embedded"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
