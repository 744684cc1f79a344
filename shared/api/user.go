package api

import "github.com/typewell/typewell/shared/domain"

// Request DTOs

type SearchRequest struct {
	Query string `json:"query"`
}

type UpdateStatsRequest struct {
	domain.SessionResult
}

type ProfilePictureRequest struct {
	ProfilePicture domain.Picture `json:"profilePicture" validate:"required"`
}

type BadgesRequest struct {
	Badges domain.Badges `json:"badges" validate:"required"`
}

// SettingsPatch holds only the settings keys that changed.
type SettingsPatch = map[string]any

type EditUsernameRequest struct {
	Username domain.Username `json:"username,omitempty" validate:"required"`
}

type EditEmailRequest struct {
	Email domain.Email `json:"email,omitempty" validate:"required,email"`
}

// Response DTOs
// Schema tags are checked on 2xx responses only.

type UserResponse struct {
	Status
	User *domain.User `json:"user" validate:"required"`
}

type PublicUserResponse struct {
	Status
	User *domain.PublicUser `json:"user" validate:"required"`
}

type SearchResponse struct {
	Status
	Users []domain.PublicUser `json:"users" validate:"dive"`
}
