package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/typewell/typewell/shared/errors"
	"github.com/typewell/typewell/shared/logger"
	"github.com/typewell/typewell/shared/middleware/ratelimiter"
	"github.com/typewell/typewell/shared/utils"
)

// Identity picks the key a request is limited by.
type Identity func(r *http.Request) (string, error)

// RateLimit answers 429 with a JSON error once identity runs out of tokens.
func RateLimit(rl *ratelimiter.Limiter, identity Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, err := identity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(key) {
				logger.Log.Debug("rate limited", "key", key, "path", r.URL.Path)
				utils.WriteErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: "Too many attempts, try again later", StatusCode: http.StatusTooManyRequests})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetIP takes the client address from the connection only; forwarding
// headers are ignored.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) == nil {
		return "", &errors.ErrorWithStatusCode{Message: fmt.Sprintf("invalid client address %q", ip), StatusCode: http.StatusBadRequest}
	}
	return ip, nil
}

// EmailOrIP keys credential endpoints by the lower-cased email in the JSON
// body, falling back to the client IP. The body is restored for the handler.
func EmailOrIP(r *http.Request) (string, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", &errors.ErrorWithStatusCode{Message: "Body is unreadable", StatusCode: http.StatusBadRequest}
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	var data struct {
		Email string `json:"email"`
	}
	if json.Unmarshal(body, &data) == nil && data.Email != "" {
		return "email:" + strings.ToLower(strings.TrimSpace(data.Email)), nil
	}
	ip, err := GetIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + ip, nil
}
