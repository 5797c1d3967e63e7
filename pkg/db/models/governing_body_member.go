package models

import (
	"time"

	"github.com/google/uuid"
)

// GoverningBodyMember is an entry on the leadership roster.
type GoverningBodyMember struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Position     string    `gorm:"column:position;not null"`
	Email        *string   `gorm:"column:email"`
	Phone        *string   `gorm:"column:phone"`
	Bio          *string   `gorm:"column:bio;type:text"`
	ImageURL     *string   `gorm:"column:image_url"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
