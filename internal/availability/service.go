package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/devesh457/nea-website/pkg/errors"
	"github.com/devesh457/nea-website/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service defines availability operations for both member and admin surfaces.
// Booking decisions adjust counters through the Repository directly so the
// guarded update runs inside their transaction.
type Service interface {
	ListActive(ctx context.Context, filter ListFilter) ([]RoomView, error)
	ListAll(ctx context.Context) ([]RoomView, error)
	Upsert(ctx context.Context, input UpsertInput) (*RoomView, error)
	UpdateByID(ctx context.Context, input UpdateInput) (*RoomView, error)
}

// UpsertInput carries the admin payload keyed by (guest_house, room_type).
type UpsertInput struct {
	GuestHouse     string
	RoomType       string
	Location       string
	TotalRooms     int
	AvailableRooms *int
	PricePerNight  decimal.Decimal
	Amenities      *string
	IsActive       *bool
}

// UpdateInput patches an existing record by its identifier.
type UpdateInput struct {
	ID             uuid.UUID
	TotalRooms     *int
	AvailableRooms *int
	PricePerNight  *decimal.Decimal
	Location       *string
	Amenities      *string
	IsActive       *bool
}

type service struct {
	repo Repository
}

// NewService builds the availability service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("availability repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListActive(ctx context.Context, filter ListFilter) ([]RoomView, error) {
	records, err := s.repo.ListActive(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list availability")
	}
	return toRoomViews(records), nil
}

func (s *service) ListAll(ctx context.Context) ([]RoomView, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list availability")
	}
	return toRoomViews(records), nil
}

func (s *service) Upsert(ctx context.Context, input UpsertInput) (*RoomView, error) {
	guestHouse := strings.TrimSpace(input.GuestHouse)
	roomType := strings.TrimSpace(input.RoomType)
	if guestHouse == "" || roomType == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest house and room type required")
	}
	if input.TotalRooms < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total rooms cannot be negative")
	}

	available := input.TotalRooms
	if input.AvailableRooms != nil {
		available = *input.AvailableRooms
	}
	if available < 0 || available > input.TotalRooms {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "available rooms must be between 0 and total rooms").
			WithDetails(map[string]any{"total_rooms": input.TotalRooms, "available_rooms": available})
	}

	existing, err := s.repo.FindByRoom(ctx, guestHouse, roomType)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load availability")
	}

	if existing == nil {
		record := &models.GuestHouseAvailability{
			GuestHouse:     guestHouse,
			RoomType:       roomType,
			Location:       strings.TrimSpace(input.Location),
			TotalRooms:     input.TotalRooms,
			AvailableRooms: available,
			PricePerNight:  input.PricePerNight,
			Amenities:      input.Amenities,
			IsActive:       true,
		}
		if input.IsActive != nil {
			record.IsActive = *input.IsActive
		}
		created, err := s.repo.Create(ctx, record)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create availability")
		}
		view := toRoomView(*created)
		return &view, nil
	}

	updates := map[string]any{
		"total_rooms":     input.TotalRooms,
		"available_rooms": available,
		"price_per_night": input.PricePerNight,
	}
	if location := strings.TrimSpace(input.Location); location != "" {
		updates["location"] = location
	}
	if input.Amenities != nil {
		updates["amenities"] = *input.Amenities
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if err := s.repo.Update(ctx, existing.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update availability")
	}

	reloaded, err := s.repo.FindByID(ctx, existing.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload availability")
	}
	view := toRoomView(*reloaded)
	return &view, nil
}

func (s *service) UpdateByID(ctx context.Context, input UpdateInput) (*RoomView, error) {
	if input.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "availability id required")
	}

	existing, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "availability not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load availability")
	}

	total := existing.TotalRooms
	if input.TotalRooms != nil {
		if *input.TotalRooms < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "total rooms cannot be negative")
		}
		total = *input.TotalRooms
	}
	available := existing.AvailableRooms
	if input.AvailableRooms != nil {
		available = *input.AvailableRooms
	}
	if available > total {
		available = total
	}
	if available < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "available rooms cannot be negative")
	}

	updates := map[string]any{
		"total_rooms":     total,
		"available_rooms": available,
	}
	if input.PricePerNight != nil {
		updates["price_per_night"] = *input.PricePerNight
	}
	if input.Location != nil {
		updates["location"] = strings.TrimSpace(*input.Location)
	}
	if input.Amenities != nil {
		updates["amenities"] = *input.Amenities
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if err := s.repo.Update(ctx, existing.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update availability")
	}

	reloaded, err := s.repo.FindByID(ctx, existing.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload availability")
	}
	view := toRoomView(*reloaded)
	return &view, nil
}

