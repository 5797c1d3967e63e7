package circulars

import (
	"context"

	"github.com/devesh457/nea-website/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes circular persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a circulars repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListPublished returns published circulars, newest first.
func (r *Repository) ListPublished(ctx context.Context) ([]models.Circular, error) {
	var circulars []models.Circular
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("published_at DESC").
		Find(&circulars).Error
	if err != nil {
		return nil, err
	}
	return circulars, nil
}

// ListAll returns every circular for the admin surface.
func (r *Repository) ListAll(ctx context.Context) ([]models.Circular, error) {
	var circulars []models.Circular
	err := r.db.WithContext(ctx).
		Order("published_at DESC").
		Find(&circulars).Error
	if err != nil {
		return nil, err
	}
	return circulars, nil
}

// Create inserts a new circular.
func (r *Repository) Create(ctx context.Context, circular *models.Circular) (*models.Circular, error) {
	if err := r.db.WithContext(ctx).Create(circular).Error; err != nil {
		return nil, err
	}
	return circular, nil
}

// Update applies column updates to a circular.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Circular{}).
		Where("id = ?", id).
		Updates(updates).Error
}
