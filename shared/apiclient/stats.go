package apiclient

import (
	"context"
	"net/http"

	"github.com/typewell/typewell/shared/api"
	"github.com/typewell/typewell/shared/domain"
)

var (
	updateStatsEndpoint = endpoint{op: "updateStats", method: http.MethodPatch, path: "/user", auth: true}
	resetStatsEndpoint  = endpoint{op: "resetStats", method: http.MethodDelete, path: "/user/stats", auth: true}
)

// UpdateStats saves one finished test. Nil missed/combinations go out as
// empty lists.
func (c *APIClient) UpdateStats(ctx context.Context, result domain.SessionResult) (*api.UserResponse, error) {
	if result.Missed == nil {
		result.Missed = []string{}
	}
	if result.Combinations == nil {
		result.Combinations = []string{}
	}
	return call[api.UserResponse](ctx, c, updateStatsEndpoint, api.UpdateStatsRequest{SessionResult: result})
}

func (c *APIClient) ResetStats(ctx context.Context) (*api.UserResponse, error) {
	return call[api.UserResponse](ctx, c, resetStatsEndpoint, nil)
}
