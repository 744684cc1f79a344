package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/typewell/typewell/shared/api"
	"github.com/typewell/typewell/shared/domain"
	"github.com/typewell/typewell/shared/utils"
)

var (
	currentUserEndpoint   = endpoint{op: "getCurrentUser", method: http.MethodGet, path: "/user", auth: true}
	searchUsersEndpoint   = endpoint{op: "searchUsers", method: http.MethodPost, path: "/user/search"}
	deleteAccountEndpoint = endpoint{op: "deleteAccount", method: http.MethodDelete, path: "/user", auth: true}
	editUsernameEndpoint  = endpoint{op: "editUsername", method: http.MethodPost, path: "/edit/username", auth: true}
	editEmailEndpoint     = endpoint{op: "editEmail", method: http.MethodPost, path: "/edit/email", auth: true}
)

// GetCurrentUser fetches the account behind the session cookie.
func (c *APIClient) GetCurrentUser(ctx context.Context) (*api.UserResponse, error) {
	return call[api.UserResponse](ctx, c, currentUserEndpoint, nil)
}

// GetUserByID fetches the public profile of any account.
func (c *APIClient) GetUserByID(ctx context.Context, id domain.UserId) (*api.PublicUserResponse, error) {
	ep := endpoint{op: "getUserById", method: http.MethodGet, path: "/user/get/" + url.PathEscape(id)}
	return call[api.PublicUserResponse](ctx, c, ep, nil)
}

// SearchUsers looks accounts up by username. The server matches with a
// regular expression, so query is escaped to be taken literally.
func (c *APIClient) SearchUsers(ctx context.Context, query string) (*api.SearchResponse, error) {
	return call[api.SearchResponse](ctx, c, searchUsersEndpoint, api.SearchRequest{Query: utils.EscapePattern(query)})
}

func (c *APIClient) DeleteAccount(ctx context.Context) (*api.MessageResponse, error) {
	return call[api.MessageResponse](ctx, c, deleteAccountEndpoint, nil)
}

func (c *APIClient) EditUsername(ctx context.Context, username domain.Username) (*api.UserResponse, error) {
	return call[api.UserResponse](ctx, c, editUsernameEndpoint, api.EditUsernameRequest{Username: username})
}

func (c *APIClient) EditEmail(ctx context.Context, email domain.Email) (*api.UserResponse, error) {
	return call[api.UserResponse](ctx, c, editEmailEndpoint, api.EditEmailRequest{Email: email})
}
