package apiclient

import (
	"context"
	"net/http"

	"github.com/typewell/typewell/shared/api"
)

var (
	registerEndpoint = endpoint{op: "register", method: http.MethodPost, path: "/register"}
	loginEndpoint    = endpoint{op: "login", method: http.MethodPost, path: "/login"}
	confirmEndpoint  = endpoint{op: "confirmPassword", method: http.MethodPost, path: "/confirm"}
	logoutEndpoint   = endpoint{op: "logout", method: http.MethodGet, path: "/logout"}
)

// Register creates an account. On success the server also opens a session,
// which lands in the client's cookie jar.
func (c *APIClient) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	return call[api.AuthResponse](ctx, c, registerEndpoint, req)
}

// Login sends login credentials; the session cookie from the response is
// kept for every following call.
func (c *APIClient) Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	return call[api.AuthResponse](ctx, c, loginEndpoint, req)
}

// ConfirmPassword re-checks credentials before sensitive account changes.
func (c *APIClient) ConfirmPassword(ctx context.Context, req api.ConfirmPasswordRequest) (*api.ConfirmResponse, error) {
	return call[api.ConfirmResponse](ctx, c, confirmEndpoint, req)
}

func (c *APIClient) Logout(ctx context.Context) (*api.MessageResponse, error) {
	return call[api.MessageResponse](ctx, c, logoutEndpoint, nil)
}
