package members

import (
	"time"

	"github.com/devesh457/nea-website/pkg/db/models"
	"github.com/devesh457/nea-website/pkg/enums"
	"github.com/google/uuid"
)

// UserView is the API projection of a member account.
type UserView struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	Name        string         `json:"name"`
	Phone       *string        `json:"phone,omitempty"`
	Designation *string        `json:"designation,omitempty"`
	Posting     *string        `json:"posting,omitempty"`
	Role        enums.UserRole `json:"role"`
	IsApproved  bool           `json:"is_approved"`
	CreatedAt   time.Time      `json:"created_at"`
}

// FromModel converts a user model into its API view.
func FromModel(user *models.User) UserView {
	return UserView{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Phone:       user.Phone,
		Designation: user.Designation,
		Posting:     user.Posting,
		Role:        user.Role,
		IsApproved:  user.IsApproved,
		CreatedAt:   user.CreatedAt,
	}
}

// DirectoryEntry is the reduced projection shown in the member directory.
type DirectoryEntry struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Designation *string   `json:"designation,omitempty"`
	Posting     *string   `json:"posting,omitempty"`
}

// DirectoryPage carries one page of directory results.
type DirectoryPage struct {
	Members    []DirectoryEntry `json:"members"`
	NextCursor *string          `json:"next_cursor,omitempty"`
}

func toDirectoryEntry(user models.User) DirectoryEntry {
	return DirectoryEntry{
		ID:          user.ID,
		Name:        user.Name,
		Designation: user.Designation,
		Posting:     user.Posting,
	}
}
