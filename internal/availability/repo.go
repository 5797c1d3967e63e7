package availability

import (
	"context"

	"github.com/devesh457/nea-website/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an availability repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// ListActive returns rooms members can actually request: active records
// with at least one room left.
func (r *repository) ListActive(ctx context.Context, filter ListFilter) ([]models.GuestHouseAvailability, error) {
	query := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("available_rooms > 0")
	if filter.GuestHouse != "" {
		query = query.Where("guest_house = ?", filter.GuestHouse)
	}
	if filter.RoomType != "" {
		query = query.Where("room_type = ?", filter.RoomType)
	}

	var records []models.GuestHouseAvailability
	err := query.
		Order("guest_house ASC").
		Order("room_type ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) ListAll(ctx context.Context) ([]models.GuestHouseAvailability, error) {
	var records []models.GuestHouseAvailability
	err := r.db.WithContext(ctx).
		Order("guest_house ASC").
		Order("room_type ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.GuestHouseAvailability, error) {
	var record models.GuestHouseAvailability
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) FindByRoom(ctx context.Context, guestHouse, roomType string) (*models.GuestHouseAvailability, error) {
	var record models.GuestHouseAvailability
	err := r.db.WithContext(ctx).
		Where("guest_house = ? AND room_type = ?", guestHouse, roomType).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) Create(ctx context.Context, record *models.GuestHouseAvailability) (*models.GuestHouseAvailability, error) {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.GuestHouseAvailability{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// AdjustAvailable applies a guarded delta to available_rooms. The WHERE clause
// makes the write a no-op when the record is missing or the delta would leave
// the count outside [0, total_rooms].
func (r *repository) AdjustAvailable(ctx context.Context, guestHouse, roomType string, delta int) error {
	if delta == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Exec(`
		UPDATE guest_house_availabilities
		SET available_rooms = available_rooms + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE guest_house = ? AND room_type = ?
			AND available_rooms + ? >= 0
			AND available_rooms + ? <= total_rooms
	`, delta, guestHouse, roomType, delta, delta).Error
}
