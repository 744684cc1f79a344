package api

import "github.com/typewell/typewell/shared/domain"

// Request DTOs
// Fields are omitempty: an unset field is left out of the body rather than
// sent as an empty string, and the server decides what is missing.

type RegisterRequest struct {
	Username domain.Username `json:"username,omitempty" validate:"required"`
	Email    domain.Email    `json:"email,omitempty" validate:"required,email"`
	Password domain.Password `json:"password,omitempty" validate:"required"`
}

type LoginRequest struct {
	Email    domain.Email    `json:"email,omitempty" validate:"required,email"`
	Password domain.Password `json:"password,omitempty" validate:"required"`
}

// ConfirmPasswordRequest re-checks the password of a logged in user before
// sensitive account changes.
type ConfirmPasswordRequest struct {
	Email    domain.Email    `json:"email,omitempty" validate:"required,email"`
	Password domain.Password `json:"password,omitempty" validate:"required"`
}

// Response DTOs

type AuthResponse struct {
	Status
	User *domain.User `json:"user,omitempty"`
}

type ConfirmResponse struct {
	Status
	Confirmed bool `json:"confirmed"`
}
