package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/paulogil93/habitua-te-api/internal/auth"
	"github.com/paulogil93/habitua-te-api/internal/models"
	"github.com/paulogil93/habitua-te-api/internal/repository"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	repo    repository.UserRepository
	newKey  auth.KeyGenerator
	keys    auth.KeyStore
	log     *zerolog.Logger
	nowFunc func() time.Time
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(repo repository.UserRepository, newKey auth.KeyGenerator, keys auth.KeyStore, log *zerolog.Logger) *UserHandler {
	return &UserHandler{
		repo:    repo,
		newKey:  newKey,
		keys:    keys,
		log:     log,
		nowFunc: time.Now,
	}
}

// ListUsers returns every user including their API key
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.repo.List(r.Context())
	if err != nil {
		writeRepoError(w, r, h.log, err, "User")
		return
	}
	writeJSON(w, http.StatusOK, mapViews(users, newUserWithKeyView))
}

// CreateUser registers a user. A known email returns the existing user.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	p, err := readParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := models.CreateUserRequest{
		Name:       p.get("name"),
		Email:      p.get("email"),
		ProfilePic: p.optString("profile_pic"),
	}

	// Return the existing user before validating the rest of the request
	if req.Email != "" {
		existing, err := h.repo.GetByEmail(r.Context(), req.Email)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, newUserView(existing))
			return
		case !errors.Is(err, repository.ErrNotFound):
			writeRepoError(w, r, h.log, err, "User")
			return
		}
	}

	// Validate request
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key, err := h.newKey(req.Email)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to generate api key")
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	y, m, d := h.nowFunc().Date()
	user := &models.User{
		Name:       req.Name,
		Email:      req.Email,
		ProfilePic: req.ProfilePic,
		APIKey:     key,
		StartDate:  datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)),
	}
	if err := h.repo.Create(r.Context(), user); err != nil {
		writeRepoError(w, r, h.log, err, "User")
		return
	}

	h.log.Info().Uint("user_id", user.ID).Msg("User created")
	writeJSON(w, http.StatusCreated, newUserWithKeyView(user))
}

// GetUser retrieves a user by ID
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, r, h.log, err, "User")
		return
	}
	writeJSON(w, http.StatusOK, newUserView(user))
}

// UpdateUser applies the parameters present in the request
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := readParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := models.UpdateUserRequest{
		Name:       p.optString("name"),
		Email:      p.optString("email"),
		ProfilePic: p.optString("profile_pic"),
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.repo.Update(r.Context(), id, &req)
	if err != nil {
		writeRepoError(w, r, h.log, err, "User")
		return
	}
	writeJSON(w, http.StatusOK, newUserView(user))
}

// DeleteUser removes a user along with their likes, attendance and favourites
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		writeRepoError(w, r, h.log, err, "User")
		return
	}
	if f, ok := h.keys.(auth.Forgetter); ok {
		f.Forget(r.Context(), user.APIKey)
	}

	h.log.Info().Uint("user_id", id).Msg("User deleted")
	writeDeleted(w, "User", id)
}
