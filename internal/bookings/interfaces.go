package bookings

import (
	"context"

	"github.com/devesh457/nea-website/pkg/db/models"
	"github.com/devesh457/nea-website/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFilter narrows admin booking reads.
type ListFilter struct {
	Status *enums.BookingStatus
}

// Repository exposes persistence operations for guest house bookings.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, booking *models.GuestHouseBooking) (*models.GuestHouseBooking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.GuestHouseBooking, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.GuestHouseBooking, error)
	ListAll(ctx context.Context, filter ListFilter) ([]models.GuestHouseBooking, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}
