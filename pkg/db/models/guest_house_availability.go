package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GuestHouseAvailability tracks room inventory per guest house and room type.
// The (guest_house, room_type) pair is the natural key; available_rooms must
// stay within [0, total_rooms].
type GuestHouseAvailability struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GuestHouse     string          `gorm:"column:guest_house;not null;uniqueIndex:idx_guest_house_room_type"`
	RoomType       string          `gorm:"column:room_type;not null;uniqueIndex:idx_guest_house_room_type"`
	Location       string          `gorm:"column:location;not null"`
	TotalRooms     int             `gorm:"column:total_rooms;not null"`
	AvailableRooms int             `gorm:"column:available_rooms;not null"`
	PricePerNight  decimal.Decimal `gorm:"column:price_per_night;type:numeric(10,2);not null"`
	Amenities      *string         `gorm:"column:amenities"`
	IsActive       bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
