package apiclienttest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/typewell/typewell/shared/errors"
	"github.com/typewell/typewell/shared/utils"
)

// NewRouter wires every account endpoint. Middlewares run inside the chi
// router, so they can see route patterns.
func NewRouter(h *Handler, middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares...)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: "Route not found", StatusCode: http.StatusNotFound})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: "Method not allowed", StatusCode: http.StatusMethodNotAllowed})
	})

	// credentials
	r.Group(func(r chi.Router) {
		if h.credentialLimit != nil {
			r.Use(h.credentialLimit)
		}
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/confirm", h.ConfirmPassword)
	})

	// public
	r.Get("/logout", h.Logout)
	r.Get("/user/get/{userId}", h.GetUserByID)
	r.Post("/user/search", h.SearchUsers)

	// session required
	r.Group(func(r chi.Router) {
		r.Use(h.auth.NeedAuth)
		r.Get("/user", h.GetCurrentUser)
		r.Patch("/user", h.UpdateStats)
		r.Delete("/user", h.DeleteAccount)
		r.Delete("/user/stats", h.ResetStats)
		r.Patch("/user/profilepicture", h.UpdateProfilePicture)
		r.Patch("/user/profilepicture/reset", h.ResetProfilePicture)
		r.Patch("/user/badges", h.UpdateBadges)
		r.Patch("/user/settings", h.UpdateSettings)
		r.Post("/edit/username", h.EditUsername)
		r.Post("/edit/email", h.EditEmail)
	})

	return r
}
