package apiclient

import (
	"context"
	"net/http"

	"github.com/typewell/typewell/shared/api"
	"github.com/typewell/typewell/shared/domain"
)

var (
	profilePictureEndpoint      = endpoint{op: "updateProfilePicture", method: http.MethodPatch, path: "/user/profilepicture", auth: true}
	resetProfilePictureEndpoint = endpoint{op: "resetProfilePicture", method: http.MethodPatch, path: "/user/profilepicture/reset", auth: true}
	badgesEndpoint              = endpoint{op: "updateBadges", method: http.MethodPatch, path: "/user/badges", auth: true}
	settingsEndpoint            = endpoint{op: "updateSettings", method: http.MethodPatch, path: "/user/settings", auth: true}
)

// UpdateProfilePicture does nothing for an empty picture.
func (c *APIClient) UpdateProfilePicture(ctx context.Context, picture domain.Picture) (*api.UserResponse, error) {
	if picture == "" {
		return nil, ErrNothingToSend
	}
	return call[api.UserResponse](ctx, c, profilePictureEndpoint, api.ProfilePictureRequest{ProfilePicture: picture})
}

func (c *APIClient) ResetProfilePicture(ctx context.Context) (*api.UserResponse, error) {
	return call[api.UserResponse](ctx, c, resetProfilePictureEndpoint, nil)
}

// UpdateBadges replaces the badge list. A nil slice sends nothing; an empty
// one clears the badges.
func (c *APIClient) UpdateBadges(ctx context.Context, badges domain.Badges) (*api.UserResponse, error) {
	if badges == nil {
		return nil, ErrNothingToSend
	}
	badges = append(domain.Badges{}, badges...)
	return call[api.UserResponse](ctx, c, badgesEndpoint, api.BadgesRequest{Badges: badges})
}

// UpdateSettings sends only changed keys; the server merges them. A nil patch
// sends nothing, an empty one is still sent.
func (c *APIClient) UpdateSettings(ctx context.Context, patch api.SettingsPatch) (*api.UserResponse, error) {
	if patch == nil {
		return nil, ErrNothingToSend
	}
	return call[api.UserResponse](ctx, c, settingsEndpoint, patch)
}
