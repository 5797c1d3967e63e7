package bookings

import (
	"context"

	"github.com/devesh457/nea-website/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a bookings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, booking *models.GuestHouseBooking) (*models.GuestHouseBooking, error) {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.GuestHouseBooking, error) {
	var booking models.GuestHouseBooking
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.GuestHouseBooking, error) {
	var bookings []models.GuestHouseBooking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) ListAll(ctx context.Context, filter ListFilter) ([]models.GuestHouseBooking, error) {
	query := r.db.WithContext(ctx).Preload("User")
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var bookings []models.GuestHouseBooking
	err := query.
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.GuestHouseBooking{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.GuestHouseBooking{}).Error
}
