package governingbody

import (
	"context"
	"fmt"
	"strings"

	"github.com/devesh457/nea-website/pkg/db/models"
	pkgerrors "github.com/devesh457/nea-website/pkg/errors"
	"github.com/google/uuid"
)

// MemberView is the API projection of a governing body member.
type MemberView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Position     string    `json:"position"`
	Email        *string   `json:"email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	ImageURL     *string   `json:"image_url,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
}

// UpsertInput carries admin changes to the roster.
type UpsertInput struct {
	ID           *uuid.UUID
	Name         string
	Position     string
	Email        *string
	Phone        *string
	Bio          *string
	ImageURL     *string
	DisplayOrder *int
	IsActive     *bool
}

// Service defines governing body roster operations.
type Service interface {
	ListActive(ctx context.Context) ([]MemberView, error)
	ListAll(ctx context.Context) ([]MemberView, error)
	Upsert(ctx context.Context, input UpsertInput) (*MemberView, error)
}

type rosterRepository interface {
	ListActive(ctx context.Context) ([]models.GoverningBodyMember, error)
	ListAll(ctx context.Context) ([]models.GoverningBodyMember, error)
	Create(ctx context.Context, member *models.GoverningBodyMember) (*models.GoverningBodyMember, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

type service struct {
	repo rosterRepository
}

// NewService builds the governing body service.
func NewService(repo rosterRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("governing body repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListActive(ctx context.Context) ([]MemberView, error) {
	roster, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list governing body")
	}
	return toViews(roster), nil
}

func (s *service) ListAll(ctx context.Context) ([]MemberView, error) {
	roster, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list governing body")
	}
	return toViews(roster), nil
}

func (s *service) Upsert(ctx context.Context, input UpsertInput) (*MemberView, error) {
	name := strings.TrimSpace(input.Name)
	position := strings.TrimSpace(input.Position)
	if name == "" || position == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and position required")
	}

	if input.ID == nil {
		member := &models.GoverningBodyMember{
			Name:     name,
			Position: position,
			Email:    input.Email,
			Phone:    input.Phone,
			Bio:      input.Bio,
			ImageURL: input.ImageURL,
			IsActive: true,
		}
		if input.DisplayOrder != nil {
			member.DisplayOrder = *input.DisplayOrder
		}
		if input.IsActive != nil {
			member.IsActive = *input.IsActive
		}
		created, err := s.repo.Create(ctx, member)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create governing body member")
		}
		view := toView(*created)
		return &view, nil
	}

	updates := map[string]any{
		"name":     name,
		"position": position,
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.DisplayOrder != nil {
		updates["display_order"] = *input.DisplayOrder
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if err := s.repo.Update(ctx, *input.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update governing body member")
	}
	view := MemberView{ID: *input.ID, Name: name, Position: position}
	return &view, nil
}

func toView(member models.GoverningBodyMember) MemberView {
	return MemberView{
		ID:           member.ID,
		Name:         member.Name,
		Position:     member.Position,
		Email:        member.Email,
		Phone:        member.Phone,
		Bio:          member.Bio,
		ImageURL:     member.ImageURL,
		DisplayOrder: member.DisplayOrder,
		IsActive:     member.IsActive,
	}
}

func toViews(roster []models.GoverningBodyMember) []MemberView {
	views := make([]MemberView, 0, len(roster))
	for _, member := range roster {
		views = append(views, toView(member))
	}
	return views
}
