package server

import (
	"errors"
	"net/http"

	"github.com/paulogil93/habitua-te-api/internal/models"
	"github.com/paulogil93/habitua-te-api/internal/repository"
	"github.com/rs/zerolog"
)

// LikeHandler handles HTTP requests related to event likes
type LikeHandler struct {
	repo repository.LikeRepository
	log  *zerolog.Logger
}

func NewLikeHandler(repo repository.LikeRepository, log *zerolog.Logger) *LikeHandler {
	return &LikeHandler{repo: repo, log: log}
}

func (h *LikeHandler) writeList(w http.ResponseWriter, r *http.Request, likes []models.Like, err error) {
	if err != nil {
		writeRepoError(w, r, h.log, err, "Like")
		return
	}
	writeJSON(w, http.StatusOK, mapViews(likes, newLikeView))
}

func (h *LikeHandler) ListLikes(w http.ResponseWriter, r *http.Request) {
	likes, err := h.repo.List(r.Context())
	h.writeList(w, r, likes, err)
}

func (h *LikeHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	likes, err := h.repo.ListByUser(r.Context(), id)
	h.writeList(w, r, likes, err)
}

func (h *LikeHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	likes, err := h.repo.ListByEvent(r.Context(), id)
	h.writeList(w, r, likes, err)
}

// CreateLike records a like. Liking the same event twice returns the
// existing like with 200.
func (h *LikeHandler) CreateLike(w http.ResponseWriter, r *http.Request) {
	p, err := readParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.CreateLikeRequest
	userID, err := p.optUint("user_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	eventID, err := p.optUint("event_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if userID != nil {
		req.UserID = *userID
	}
	if eventID != nil {
		req.EventID = *eventID
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := h.repo.FindByPair(r.Context(), req.UserID, req.EventID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, newLikeView(existing))
		return
	case !errors.Is(err, repository.ErrNotFound):
		writeRepoError(w, r, h.log, err, "Like")
		return
	}

	like := &models.Like{UserID: req.UserID, EventID: req.EventID}
	if err := h.repo.Create(r.Context(), like); err != nil {
		writeRepoError(w, r, h.log, err, "Like")
		return
	}
	writeJSON(w, http.StatusCreated, newLikeView(like))
}

func (h *LikeHandler) GetLike(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	like, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, r, h.log, err, "Like")
		return
	}
	writeJSON(w, http.StatusOK, newLikeView(like))
}

func (h *LikeHandler) UpdateLike(w http.ResponseWriter, r *http.Request) {
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

	var req models.UpdateLikeRequest
	if req.UserID, err = p.optUint("user_id"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.EventID, err = p.optUint("event_id"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	like, err := h.repo.Update(r.Context(), id, &req)
	if err != nil {
		writeRepoError(w, r, h.log, err, "Like")
		return
	}
	writeJSON(w, http.StatusOK, newLikeView(like))
}

func (h *LikeHandler) DeleteLike(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, r, h.log, err, "Like")
		return
	}
	writeDeleted(w, "Like", id)
}
