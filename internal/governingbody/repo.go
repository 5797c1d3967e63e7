package governingbody

import (
	"context"

	"github.com/devesh457/nea-website/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes governing body persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a governing body repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns active members ordered by their display position.
func (r *Repository) ListActive(ctx context.Context) ([]models.GoverningBodyMember, error) {
	var roster []models.GoverningBodyMember
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC").
		Order("name ASC").
		Find(&roster).Error
	if err != nil {
		return nil, err
	}
	return roster, nil
}

// ListAll returns the full roster for the admin surface.
func (r *Repository) ListAll(ctx context.Context) ([]models.GoverningBodyMember, error) {
	var roster []models.GoverningBodyMember
	err := r.db.WithContext(ctx).
		Order("display_order ASC").
		Order("name ASC").
		Find(&roster).Error
	if err != nil {
		return nil, err
	}
	return roster, nil
}

// Create inserts a new roster member.
func (r *Repository) Create(ctx context.Context, member *models.GoverningBodyMember) (*models.GoverningBodyMember, error) {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

// Update applies column updates to a roster member.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.GoverningBodyMember{}).
		Where("id = ?", id).
		Updates(updates).Error
}
