package apiclienttest

import (
	"context"
	"net/http"
	"time"

	"github.com/typewell/typewell/shared/domain"
	"github.com/typewell/typewell/shared/errors"
	"github.com/typewell/typewell/shared/jwt"
	"github.com/typewell/typewell/shared/utils"
)

// Key to store the user id in the request context
type key int

const userIdKey key = 0

// Auth reads the session cookie the way the real API does.
type Auth struct {
	jwtService    jwt.JwtService
	secureCookies bool
}

func NewAuth(jwtService jwt.JwtService, secureCookies bool) *Auth {
	return &Auth{jwtService: jwtService, secureCookies: secureCookies}
}

// NeedAuth rejects requests without a valid session cookie.
func (a *Auth) NeedAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(jwt.CookieName)
		if err != nil || cookie.Value == "" {
			utils.WriteErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: "Please sign-in", StatusCode: http.StatusUnauthorized})
			return
		}
		uid, err := a.jwtService.DecodeToken(cookie.Value)
		if err != nil {
			a.clearSession(w)
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), userIdKey, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Auth) openSession(w http.ResponseWriter, user domain.User) error {
	token, err := a.jwtService.NewToken(user)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     jwt.CookieName,
		Value:    token,
		Expires:  time.Now().Add(a.jwtService.TTL()),
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (a *Auth) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     jwt.CookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func userIdFromContext(r *http.Request) domain.UserId {
	uid, _ := r.Context().Value(userIdKey).(domain.UserId)
	return uid
}
