package circulars

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/devesh457/nea-website/pkg/db/models"
	pkgerrors "github.com/devesh457/nea-website/pkg/errors"
	"github.com/google/uuid"
)

// CircularView is the API projection of a circular.
type CircularView struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	FileURL     *string   `json:"file_url,omitempty"`
	IsPublished bool      `json:"is_published"`
	PublishedAt time.Time `json:"published_at"`
}

// CreateInput carries a new circular from the admin surface.
type CreateInput struct {
	Title       string
	Content     string
	FileURL     *string
	IsPublished *bool
}

// Service defines circular operations.
type Service interface {
	ListPublished(ctx context.Context) ([]CircularView, error)
	ListAll(ctx context.Context) ([]CircularView, error)
	Create(ctx context.Context, input CreateInput) (*CircularView, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
}

type circularRepository interface {
	ListPublished(ctx context.Context) ([]models.Circular, error)
	ListAll(ctx context.Context) ([]models.Circular, error)
	Create(ctx context.Context, circular *models.Circular) (*models.Circular, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

type service struct {
	repo circularRepository
	now  func() time.Time
}

// NewService builds the circulars service.
func NewService(repo circularRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("circulars repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) ListPublished(ctx context.Context) ([]CircularView, error) {
	circulars, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list circulars")
	}
	return toViews(circulars), nil
}

func (s *service) ListAll(ctx context.Context) ([]CircularView, error) {
	circulars, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list circulars")
	}
	return toViews(circulars), nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*CircularView, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" || content == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title and content required")
	}

	circular := &models.Circular{
		Title:       title,
		Content:     content,
		FileURL:     input.FileURL,
		IsPublished: true,
		PublishedAt: s.now().UTC(),
	}
	if input.IsPublished != nil {
		circular.IsPublished = *input.IsPublished
	}

	created, err := s.repo.Create(ctx, circular)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create circular")
	}
	view := toView(*created)
	return &view, nil
}

func (s *service) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "circular id required")
	}
	if err := s.repo.Update(ctx, id, map[string]any{"is_published": published}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update circular")
	}
	return nil
}

func toView(circular models.Circular) CircularView {
	return CircularView{
		ID:          circular.ID,
		Title:       circular.Title,
		Content:     circular.Content,
		FileURL:     circular.FileURL,
		IsPublished: circular.IsPublished,
		PublishedAt: circular.PublishedAt,
	}
}

func toViews(circulars []models.Circular) []CircularView {
	views := make([]CircularView, 0, len(circulars))
	for _, circular := range circulars {
		views = append(views, toView(circular))
	}
	return views
}
