package models

import (
	"time"

	"github.com/google/uuid"
)

// Circular is an association announcement, optionally linking a PDF.
type Circular struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Content     string    `gorm:"column:content;type:text;not null"`
	FileURL     *string   `gorm:"column:file_url"`
	IsPublished bool      `gorm:"column:is_published;not null;default:true"`
	PublishedAt time.Time `gorm:"column:published_at;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
