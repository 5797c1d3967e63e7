package members

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/devesh457/nea-website/pkg/db/models"
	"github.com/devesh457/nea-website/pkg/enums"
	pkgerrors "github.com/devesh457/nea-website/pkg/errors"
	"github.com/devesh457/nea-website/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines member directory, profile, and approval operations.
type Service interface {
	Directory(ctx context.Context, params pagination.Params) (*DirectoryPage, error)
	Profile(ctx context.Context, userID uuid.UUID) (*UserView, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*UserView, error)
	ListPending(ctx context.Context) ([]UserView, error)
	DecideRegistration(ctx context.Context, input RegistrationDecisionInput) (*UserView, error)
}

// UpdateProfileInput patches the caller's own profile fields.
type UpdateProfileInput struct {
	UserID      uuid.UUID
	Name        *string
	Phone       *string
	Designation *string
	Posting     *string
}

// RegistrationDecision is the action an admin can take on a pending account.
type RegistrationDecision string

const (
	RegistrationApprove RegistrationDecision = "approve"
	RegistrationReject  RegistrationDecision = "reject"
)

// RegistrationDecisionInput carries the admin decision on a registration.
type RegistrationDecisionInput struct {
	UserID      uuid.UUID
	Decision    RegistrationDecision
	ActorUserID uuid.UUID
	ActorRole   string
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListApproved(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.User, error)
	ListPending(ctx context.Context) ([]models.User, error)
}

type service struct {
	repo userRepository
	now  func() time.Time
}

// NewService builds the members service.
func NewService(repo userRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("members repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Directory(ctx context.Context, params pagination.Params) (*DirectoryPage, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	users, err := s.repo.ListApproved(ctx, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list members")
	}

	page := &DirectoryPage{Members: make([]DirectoryEntry, 0, len(users))}
	if len(users) > limit {
		users = users[:limit]
		last := users[len(users)-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &next
	}
	for _, user := range users {
		page.Members = append(page.Members, toDirectoryEntry(user))
	}
	return page, nil
}

func (s *service) Profile(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	view := FromModel(user)
	return &view, nil
}

func (s *service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*UserView, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		updates["name"] = name
	}
	if input.Phone != nil {
		updates["phone"] = strings.TrimSpace(*input.Phone)
	}
	if input.Designation != nil {
		updates["designation"] = strings.TrimSpace(*input.Designation)
	}
	if input.Posting != nil {
		updates["posting"] = strings.TrimSpace(*input.Posting)
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.Update(ctx, input.UserID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	return s.Profile(ctx, input.UserID)
}

func (s *service) ListPending(ctx context.Context) ([]UserView, error) {
	users, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending users")
	}
	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, FromModel(&users[i]))
	}
	return views, nil
}

func (s *service) DecideRegistration(ctx context.Context, input RegistrationDecisionInput) (*UserView, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.ActorRole != enums.UserRoleAdmin.String() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}

	user, err := s.repo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if user.IsApproved {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "user already approved")
	}

	switch input.Decision {
	case RegistrationApprove:
		now := s.now().UTC()
		if err := s.repo.Update(ctx, user.ID, map[string]any{
			"is_approved": true,
			"approved_by": input.ActorUserID,
			"approved_at": now,
		}); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approve user")
		}
		user.IsApproved = true
		user.ApprovedBy = &input.ActorUserID
		user.ApprovedAt = &now
		view := FromModel(user)
		return &view, nil

	case RegistrationReject:
		// A rejected registration leaves no account behind.
		if err := s.repo.Delete(ctx, user.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reject user")
		}
		view := FromModel(user)
		return &view, nil

	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "decision must be approve or reject")
	}
}
