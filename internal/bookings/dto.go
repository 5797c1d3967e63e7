package bookings

import (
	"time"

	"github.com/devesh457/nea-website/pkg/db/models"
	"github.com/devesh457/nea-website/pkg/enums"
	"github.com/google/uuid"
)

// BookingView is the member-facing projection of a booking.
type BookingView struct {
	ID              uuid.UUID            `json:"id"`
	GuestHouse      string               `json:"guest_house"`
	Location        string               `json:"location"`
	RoomType        string               `json:"room_type"`
	CheckIn         time.Time            `json:"check_in"`
	CheckOut        time.Time            `json:"check_out"`
	Guests          int                  `json:"guests"`
	Purpose         enums.BookingPurpose `json:"purpose"`
	SpecialRequests *string              `json:"special_requests,omitempty"`
	Status          enums.BookingStatus  `json:"status"`
	TotalAmount     *string              `json:"total_amount,omitempty"`
	RejectedReason  *string              `json:"rejected_reason,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

// OwnerView carries the requester details shown on the admin queue.
type OwnerView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone,omitempty"`
	Designation *string   `json:"designation,omitempty"`
	Posting     *string   `json:"posting,omitempty"`
}

// AdminBookingView extends the booking projection with its owner.
type AdminBookingView struct {
	BookingView
	Owner *OwnerView `json:"owner,omitempty"`
}

func toBookingView(booking models.GuestHouseBooking) BookingView {
	view := BookingView{
		ID:              booking.ID,
		GuestHouse:      booking.GuestHouse,
		Location:        booking.Location,
		RoomType:        booking.RoomType,
		CheckIn:         booking.CheckIn,
		CheckOut:        booking.CheckOut,
		Guests:          booking.Guests,
		Purpose:         booking.Purpose,
		SpecialRequests: booking.SpecialRequests,
		Status:          booking.Status,
		RejectedReason:  booking.RejectedReason,
		CreatedAt:       booking.CreatedAt,
	}
	if booking.TotalAmount != nil {
		amount := booking.TotalAmount.StringFixed(2)
		view.TotalAmount = &amount
	}
	return view
}

func toBookingViews(bookings []models.GuestHouseBooking) []BookingView {
	views := make([]BookingView, 0, len(bookings))
	for _, booking := range bookings {
		views = append(views, toBookingView(booking))
	}
	return views
}

func toAdminBookingView(booking models.GuestHouseBooking) AdminBookingView {
	view := AdminBookingView{BookingView: toBookingView(booking)}
	if booking.User != nil {
		view.Owner = &OwnerView{
			ID:          booking.User.ID,
			Name:        booking.User.Name,
			Email:       booking.User.Email,
			Phone:       booking.User.Phone,
			Designation: booking.User.Designation,
			Posting:     booking.User.Posting,
		}
	}
	return view
}

func toAdminBookingViews(bookings []models.GuestHouseBooking) []AdminBookingView {
	views := make([]AdminBookingView, 0, len(bookings))
	for _, booking := range bookings {
		views = append(views, toAdminBookingView(booking))
	}
	return views
}
