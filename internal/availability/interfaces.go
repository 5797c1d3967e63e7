package availability

import (
	"context"

	"github.com/devesh457/nea-website/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFilter narrows availability reads.
type ListFilter struct {
	GuestHouse string
	RoomType   string
}

// Repository exposes persistence operations for guest house availability.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListActive(ctx context.Context, filter ListFilter) ([]models.GuestHouseAvailability, error)
	ListAll(ctx context.Context) ([]models.GuestHouseAvailability, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.GuestHouseAvailability, error)
	FindByRoom(ctx context.Context, guestHouse, roomType string) (*models.GuestHouseAvailability, error)
	Create(ctx context.Context, record *models.GuestHouseAvailability) (*models.GuestHouseAvailability, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	AdjustAvailable(ctx context.Context, guestHouse, roomType string, delta int) error
}
