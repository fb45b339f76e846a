package dto

import "time"

type ImageDTO struct {
	ID          uint      `json:"id"`
	Key         string    `json:"key"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Width       *int      `json:"width"`
	Height      *int      `json:"height"`
	URL         string    `json:"url"`
	URLExpires  time.Time `json:"url_expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

type UploadURLDTO struct {
	UploadURL string            `json:"upload_url"`
	Method    string            `json:"method"`
	Key       string            `json:"key"`
	ExpiresAt time.Time         `json:"expires_at"`
	Headers   map[string]string `json:"headers"`
}
