package apiclienttest

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"github.com/typewell/typewell/shared/api"
	"github.com/typewell/typewell/shared/domain"
	"github.com/typewell/typewell/shared/errors"
	"github.com/typewell/typewell/shared/utils"
)

// Handler implements the account API endpoints on top of a Store.
type Handler struct {
	store     *Store
	auth      *Auth
	sanitizer *bluemonday.Policy

	credentialLimit func(http.Handler) http.Handler
}

func NewHandler(store *Store, auth *Auth) *Handler {
	return &Handler{
		store:     store,
		auth:      auth,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// LimitCredentials guards register, login and confirm with mw.
func (h *Handler) LimitCredentials(mw func(http.Handler) http.Handler) *Handler {
	h.credentialLimit = mw
	return h
}

var errEmptyUsername = &errors.ErrorWithStatusCode{Message: "Username is empty", StatusCode: http.StatusBadRequest}

// cleanUsername strips markup and surrounding space.
func (h *Handler) cleanUsername(name string) (string, error) {
	name = strings.TrimSpace(h.sanitizer.Sanitize(name))
	if name == "" {
		return "", errEmptyUsername
	}
	return name, nil
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	username, err := h.cleanUsername(req.Username)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	user, err := h.store.Create(username, req.Email, req.Password)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if err := h.auth.openSession(w, user); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, api.AuthResponse{Status: api.Status{Message: "Registered"}, User: &user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	user, err := h.store.Authenticate(req.Email, req.Password)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if err := h.auth.openSession(w, user); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.AuthResponse{Status: api.Status{Message: "Logged in"}, User: &user})
}

func (h *Handler) ConfirmPassword(w http.ResponseWriter, r *http.Request) {
	var req api.ConfirmPasswordRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if _, err := h.store.Authenticate(req.Email, req.Password); err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, api.ConfirmResponse{Status: api.Status{Error: err.Error()}, Confirmed: false})
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.ConfirmResponse{Confirmed: true})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.clearSession(w)
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Status: api.Status{Message: "Logged out"}})
}

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.Get(userIdFromContext(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.UserResponse{User: &user})
}

func (h *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.Get(chi.URLParam(r, "userId"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	public := user.Public()
	utils.WriteJSON(w, http.StatusOK, api.PublicUserResponse{User: &public})
}

func (h *Handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	var req api.SearchRequest
	if err := utils.Decode(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	users, err := h.store.Search(req.Query)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.SearchResponse{Users: users})
}

func (h *Handler) UpdateStats(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateStatsRequest
	if err := utils.Decode(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	h.update(w, r, func(u *domain.User) error {
		u.Stats.Record(req.SessionResult)
		return nil
	})
}

func (h *Handler) ResetStats(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(u *domain.User) error {
		u.Stats.Reset()
		return nil
	})
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(userIdFromContext(r)); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	h.auth.clearSession(w)
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Status: api.Status{Message: "Account deleted"}})
}

func (h *Handler) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	var req api.ProfilePictureRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	h.update(w, r, func(u *domain.User) error {
		u.ProfilePicture = req.ProfilePicture
		return nil
	})
}

func (h *Handler) ResetProfilePicture(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(u *domain.User) error {
		u.ProfilePicture = ""
		return nil
	})
}

func (h *Handler) UpdateBadges(w http.ResponseWriter, r *http.Request) {
	var req api.BadgesRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	h.update(w, r, func(u *domain.User) error {
		u.Badges = req.Badges
		return nil
	})
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch api.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil || patch == nil {
		utils.WriteErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest})
		return
	}
	h.update(w, r, func(u *domain.User) error {
		u.Settings = u.Settings.Merge(patch)
		return nil
	})
}

func (h *Handler) EditUsername(w http.ResponseWriter, r *http.Request) {
	var req api.EditUsernameRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	username, err := h.cleanUsername(req.Username)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	h.update(w, r, func(u *domain.User) error {
		u.Username = username
		return nil
	})
}

func (h *Handler) EditEmail(w http.ResponseWriter, r *http.Request) {
	var req api.EditEmailRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	h.update(w, r, func(u *domain.User) error {
		u.Email = req.Email
		return nil
	})
}

// update runs f on the session's user and answers with the result.
func (h *Handler) update(w http.ResponseWriter, r *http.Request, f func(u *domain.User) error) {
	user, err := h.store.Update(userIdFromContext(r), f)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.UserResponse{User: &user})
}
