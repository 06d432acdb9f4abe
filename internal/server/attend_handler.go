package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/paulogil93/habitua-te-api/internal/models"
	"github.com/paulogil93/habitua-te-api/internal/repository"
	"github.com/rs/zerolog"
)

// AttendHandler handles HTTP requests related to event attendance
type AttendHandler struct {
	repo repository.AttendRepository
	log  *zerolog.Logger
}

func NewAttendHandler(repo repository.AttendRepository, log *zerolog.Logger) *AttendHandler {
	return &AttendHandler{repo: repo, log: log}
}

func (h *AttendHandler) ListAttends(w http.ResponseWriter, r *http.Request) {
	attends, err := h.repo.List(r.Context())
	if err != nil {
		writeRepoError(w, r, h.log, err, "Attendance")
		return
	}
	writeJSON(w, http.StatusOK, mapViews(attends, newAttendView))
}

// ListAttendees returns attendance joined with users, optionally limited to
// one will_go category taken from the path.
func (h *AttendHandler) ListAttendees(w http.ResponseWriter, r *http.Request) {
	var filter repository.AttendeeFilter
	if category, ok := mux.Vars(r)["category"]; ok {
		filter.WillGo = &category
	}
	h.writeAttendees(w, r, filter)
}

// ListEventAttendees is ListAttendees restricted to one event
func (h *AttendHandler) ListEventAttendees(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := repository.AttendeeFilter{EventID: &id}
	if category, ok := mux.Vars(r)["category"]; ok {
		filter.WillGo = &category
	}
	h.writeAttendees(w, r, filter)
}

func (h *AttendHandler) writeAttendees(w http.ResponseWriter, r *http.Request, filter repository.AttendeeFilter) {
	rows, err := h.repo.ListAttendees(r.Context(), filter)
	if err != nil {
		writeRepoError(w, r, h.log, err, "Attendance")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// CreateAttend creates attendance without a client chosen id
func (h *AttendHandler) CreateAttend(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readRequest(w, r)
	if !ok {
		return
	}

	attend, err := h.repo.Create(r.Context(), req)
	if err != nil {
		writeRepoError(w, r, h.log, err, "Attendance")
		return
	}
	writeJSON(w, http.StatusCreated, newAttendView(attend))
}

// UpsertAttend updates attendance id, creating it when it does not exist
func (h *AttendHandler) UpsertAttend(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, ok := h.readRequest(w, r)
	if !ok {
		return
	}

	attend, created, err := h.repo.Upsert(r.Context(), id, req)
	if err != nil {
		writeRepoError(w, r, h.log, err, "Attendance")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, newAttendView(attend))
}

func (h *AttendHandler) DeleteAttend(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, r, h.log, err, "Attendance")
		return
	}
	writeDeleted(w, "Attendance", id)
}

func (h *AttendHandler) readRequest(w http.ResponseWriter, r *http.Request) (*models.AttendRequest, bool) {
	p, err := readParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	req := &models.AttendRequest{WillGo: p.optString("will_go")}
	if req.UserID, err = p.optUint("user_id"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	if req.EventID, err = p.optUint("event_id"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return req, true
}
