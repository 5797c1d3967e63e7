package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/devesh457/nea-website/pkg/enums"
)

// User represents a registered association member or administrator.
// New signups stay unapproved until an admin decides them.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Name         string         `gorm:"column:name;not null"`
	Phone        *string        `gorm:"column:phone"`
	Designation  *string        `gorm:"column:designation"`
	Posting      *string        `gorm:"column:posting"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null;default:'USER'"`
	IsApproved   bool           `gorm:"column:is_approved;not null;default:false"`
	ApprovedBy   *uuid.UUID     `gorm:"column:approved_by;type:uuid"`
	ApprovedAt   *time.Time     `gorm:"column:approved_at"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
