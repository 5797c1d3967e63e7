package availability

import (
	"time"

	"github.com/devesh457/nea-website/pkg/db/models"
	"github.com/google/uuid"
)

// RoomView is the API projection of an availability record.
type RoomView struct {
	ID             uuid.UUID `json:"id"`
	GuestHouse     string    `json:"guest_house"`
	RoomType       string    `json:"room_type"`
	Location       string    `json:"location"`
	TotalRooms     int       `json:"total_rooms"`
	AvailableRooms int       `json:"available_rooms"`
	PricePerNight  string    `json:"price_per_night"`
	Amenities      *string   `json:"amenities,omitempty"`
	IsActive       bool      `json:"is_active"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toRoomView(record models.GuestHouseAvailability) RoomView {
	return RoomView{
		ID:             record.ID,
		GuestHouse:     record.GuestHouse,
		RoomType:       record.RoomType,
		Location:       record.Location,
		TotalRooms:     record.TotalRooms,
		AvailableRooms: record.AvailableRooms,
		PricePerNight:  record.PricePerNight.StringFixed(2),
		Amenities:      record.Amenities,
		IsActive:       record.IsActive,
		UpdatedAt:      record.UpdatedAt,
	}
}

func toRoomViews(records []models.GuestHouseAvailability) []RoomView {
	views := make([]RoomView, 0, len(records))
	for _, record := range records {
		views = append(views, toRoomView(record))
	}
	return views
}
