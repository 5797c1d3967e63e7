package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/devesh457/nea-website/pkg/enums"
)

// GuestHouseBooking is a member's stay request. The status column carries
// the full lifecycle; only the owner may remove a rejected row.
type GuestHouseBooking struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index"`
	GuestHouse      string               `gorm:"column:guest_house;not null"`
	Location        string               `gorm:"column:location;not null"`
	CheckIn         time.Time            `gorm:"column:check_in;not null"`
	CheckOut        time.Time            `gorm:"column:check_out;not null"`
	Guests          int                  `gorm:"column:guests;not null"`
	RoomType        string               `gorm:"column:room_type;not null"`
	Purpose         enums.BookingPurpose `gorm:"column:purpose;type:text;not null"`
	SpecialRequests *string              `gorm:"column:special_requests"`
	Status          enums.BookingStatus  `gorm:"column:status;type:text;not null;default:'PENDING'"`
	TotalAmount     *decimal.Decimal     `gorm:"column:total_amount;type:numeric(10,2)"`
	RejectedReason  *string              `gorm:"column:rejected_reason"`
	ApprovedBy      *uuid.UUID           `gorm:"column:approved_by;type:uuid"`
	ApprovedAt      *time.Time           `gorm:"column:approved_at"`
	User            *User                `gorm:"foreignKey:UserID"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
