package auth

import "github.com/devesh457/nea-website/internal/members"

// LoginRequest carries member credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the token pair and the authenticated user.
type LoginResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	User         members.UserView `json:"user"`
}

// RegisterRequest carries a new member registration.
type RegisterRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8"`
	Name        string  `json:"name" validate:"required"`
	Phone       *string `json:"phone,omitempty"`
	Designation *string `json:"designation,omitempty"`
	Posting     *string `json:"posting,omitempty"`
}

// RegisterResponse confirms the pending account.
type RegisterResponse struct {
	User members.UserView `json:"user"`
}

// RefreshRequest exchanges an expired access token and refresh token pair.
// The access token arrives as a bearer header, not in the body.
type RefreshRequest struct {
	AccessToken  string `json:"-"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest rotates the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
