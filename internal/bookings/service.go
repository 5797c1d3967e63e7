package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/devesh457/nea-website/internal/availability"
	"github.com/devesh457/nea-website/pkg/db/models"
	"github.com/devesh457/nea-website/pkg/enums"
	pkgerrors "github.com/devesh457/nea-website/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	minGuests = 1
	maxGuests = 10
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines booking operations for member and admin surfaces.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*BookingView, error)
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]BookingView, error)
	ListAll(ctx context.Context, filter ListFilter) ([]AdminBookingView, error)
	Decide(ctx context.Context, input DecisionInput) (*AdminBookingView, error)
	Cancel(ctx context.Context, input CancelInput) (*BookingView, error)
	DeleteRejected(ctx context.Context, input DeleteRejectedInput) error
}

// CreateInput captures a new stay request.
type CreateInput struct {
	OwnerID         uuid.UUID
	GuestHouse      string
	Location        string
	RoomType        string
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	Purpose         enums.BookingPurpose
	SpecialRequests *string
}

// Decision is the action an admin can take on a pending booking.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// DecisionInput carries the admin decision and its actor. TotalAmount is
// the admin-entered charge, applied on approval.
type DecisionInput struct {
	BookingID      uuid.UUID
	Decision       Decision
	RejectedReason *string
	TotalAmount    *decimal.Decimal
	ActorUserID    uuid.UUID
	ActorRole      string
}

// CancelInput identifies the booking the owner wants to withdraw.
type CancelInput struct {
	BookingID   uuid.UUID
	ActorUserID uuid.UUID
}

// DeleteRejectedInput identifies the rejected booking the owner wants removed.
type DeleteRejectedInput struct {
	BookingID   uuid.UUID
	ActorUserID uuid.UUID
}

type service struct {
	repo  Repository
	rooms availability.Repository
	tx    txRunner
	now   func() time.Time
}

// NewService builds a bookings service with the required dependencies.
func NewService(repo Repository, rooms availability.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bookings repository required")
	}
	if rooms == nil {
		return nil, fmt.Errorf("availability repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:  repo,
		rooms: rooms,
		tx:    tx,
		now:   time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*BookingView, error) {
	if input.OwnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	guestHouse := strings.TrimSpace(input.GuestHouse)
	roomType := strings.TrimSpace(input.RoomType)
	if guestHouse == "" || roomType == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest house and room type required").
			WithDetails(map[string]any{"kind": "missing-field"})
	}
	if !input.Purpose.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid booking purpose")
	}
	if input.Guests < minGuests || input.Guests > maxGuests {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest count out of range").
			WithDetails(map[string]any{"kind": "guest-count-out-of-range", "min": minGuests, "max": maxGuests})
	}

	today := midnightUTC(s.now())
	if input.CheckIn.Before(today) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "check-in cannot be in the past").
			WithDetails(map[string]any{"kind": "checkin-in-past"})
	}
	if !input.CheckOut.After(input.CheckIn) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "check-out must be after check-in").
			WithDetails(map[string]any{"kind": "checkout-before-checkin"})
	}

	room, err := s.rooms.FindByRoom(ctx, guestHouse, roomType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "room is not available").
				WithDetails(map[string]any{"kind": "room-not-available"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check availability")
	}
	if !room.IsActive || room.AvailableRooms < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room is not available").
			WithDetails(map[string]any{"kind": "room-not-available"})
	}

	location := strings.TrimSpace(input.Location)
	if location == "" {
		location = room.Location
	}

	// The amount stays unset until an admin approves and enters the charge.
	booking := &models.GuestHouseBooking{
		UserID:          input.OwnerID,
		GuestHouse:      guestHouse,
		Location:        location,
		RoomType:        roomType,
		CheckIn:         input.CheckIn,
		CheckOut:        input.CheckOut,
		Guests:          input.Guests,
		Purpose:         input.Purpose,
		SpecialRequests: input.SpecialRequests,
		Status:          enums.BookingStatusPending,
	}

	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking")
	}

	view := toBookingView(*created)
	return &view, nil
}

func (s *service) ListMine(ctx context.Context, ownerID uuid.UUID) ([]BookingView, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	bookings, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}
	return toBookingViews(bookings), nil
}

func (s *service) ListAll(ctx context.Context, filter ListFilter) ([]AdminBookingView, error) {
	bookings, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}
	return toAdminBookingViews(bookings), nil
}

func (s *service) Decide(ctx context.Context, input DecisionInput) (*AdminBookingView, error) {
	if input.BookingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.ActorRole != enums.UserRoleAdmin.String() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}

	switch input.Decision {
	case DecisionApprove, DecisionReject:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "decision must be approve or reject")
	}

	if input.Decision == DecisionReject {
		if input.RejectedReason == nil || strings.TrimSpace(*input.RejectedReason) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "rejection reason required")
		}
	}

	var updated *models.GuestHouseBooking
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		booking, err := repo.FindByID(ctx, input.BookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
		}
		if booking.Status != enums.BookingStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "booking already decided").
				WithDetails(map[string]any{"status": booking.Status})
		}

		now := s.now().UTC()
		updates := map[string]any{}

		if input.Decision == DecisionApprove {
			// The guarded update skips the decrement when the availability
			// row is missing or already at zero; the approval still commits.
			if err := s.rooms.WithTx(tx).AdjustAvailable(ctx, booking.GuestHouse, booking.RoomType, -1); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement availability")
			}

			updates["status"] = enums.BookingStatusApproved
			booking.Status = enums.BookingStatusApproved
			if input.TotalAmount != nil {
				updates["total_amount"] = *input.TotalAmount
				booking.TotalAmount = input.TotalAmount
			}
		} else {
			reason := strings.TrimSpace(*input.RejectedReason)
			updates["status"] = enums.BookingStatusRejected
			updates["rejected_reason"] = reason
			booking.Status = enums.BookingStatusRejected
			booking.RejectedReason = &reason
		}

		// Both outcomes record who decided and when.
		updates["approved_by"] = input.ActorUserID
		updates["approved_at"] = now
		booking.ApprovedBy = &input.ActorUserID
		booking.ApprovedAt = &now

		if err := repo.Update(ctx, booking.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking")
		}
		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := toAdminBookingView(*updated)
	return &view, nil
}

func (s *service) Cancel(ctx context.Context, input CancelInput) (*BookingView, error) {
	if input.BookingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var updated *models.GuestHouseBooking
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		booking, err := repo.FindByID(ctx, input.BookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
		}
		if booking.UserID != input.ActorUserID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "booking does not belong to user")
		}

		switch booking.Status {
		case enums.BookingStatusCancelled:
			return pkgerrors.New(pkgerrors.CodeConflict, "booking already cancelled")
		case enums.BookingStatusRejected:
			return pkgerrors.New(pkgerrors.CodeConflict, "rejected booking cannot be cancelled")
		}

		wasApproved := booking.Status == enums.BookingStatusApproved

		if err := repo.Update(ctx, booking.ID, map[string]any{
			"status": enums.BookingStatusCancelled,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking")
		}

		// Restoring the room only applies when a room was actually held.
		if wasApproved {
			if err := s.rooms.WithTx(tx).AdjustAvailable(ctx, booking.GuestHouse, booking.RoomType, 1); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore availability")
			}
		}

		booking.Status = enums.BookingStatusCancelled
		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := toBookingView(*updated)
	return &view, nil
}

func (s *service) DeleteRejected(ctx context.Context, input DeleteRejectedInput) error {
	if input.BookingID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "booking id required")
	}
	if input.ActorUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	booking, err := s.repo.FindByID(ctx, input.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	if booking.UserID != input.ActorUserID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "booking does not belong to user")
	}
	if booking.Status != enums.BookingStatusRejected {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "only rejected bookings can be removed")
	}

	if err := s.repo.Delete(ctx, booking.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete booking")
	}
	return nil
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
