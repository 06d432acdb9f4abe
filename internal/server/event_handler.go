package server

import (
	"net/http"
	"time"

	"github.com/paulogil93/habitua-te-api/internal/models"
	"github.com/paulogil93/habitua-te-api/internal/repository"
	"github.com/rs/zerolog"
)

// EventHandler handles HTTP requests related to news and events
type EventHandler struct {
	repo    repository.EventRepository
	log     *zerolog.Logger
	nowFunc func() time.Time
}

func NewEventHandler(repo repository.EventRepository, log *zerolog.Logger) *EventHandler {
	return &EventHandler{repo: repo, log: log, nowFunc: time.Now}
}

func (h *EventHandler) writeList(w http.ResponseWriter, r *http.Request, events []models.Event, err error) {
	if err != nil {
		writeRepoError(w, r, h.log, err, "Event")
		return
	}
	writeJSON(w, http.StatusOK, mapViews(events, func(e *models.Event) eventView {
		return newEventView(e, eventDateLayout)
	}))
}

// ListEvents returns every news item and event
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.repo.List(r.Context())
	h.writeList(w, r, events, err)
}

// ListNews returns news items, newest first
func (h *EventHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	events, err := h.repo.ListByType(r.Context(), models.EventTypeNews, true)
	h.writeList(w, r, events, err)
}

// ListUpcoming returns events dated after today, soonest first
func (h *EventHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	events, err := h.repo.ListUpcoming(r.Context(), models.EventTypeEvent, h.nowFunc())
	h.writeList(w, r, events, err)
}

// ListAllOfTypeEvent returns past and future events, latest first
func (h *EventHandler) ListAllOfTypeEvent(w http.ResponseWriter, r *http.Request) {
	events, err := h.repo.ListByType(r.Context(), models.EventTypeEvent, true)
	h.writeList(w, r, events, err)
}

func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	p, err := readParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := models.CreateEventRequest{
		Title:       p.get("title"),
		Description: p.get("description"),
		Picture:     p.optString("picture"),
		EventType:   p.get("event_type"),
	}
	if req.EventType == "" {
		req.EventType = models.EventTypeEvent
	}
	if req.Date, err = p.optDate("date"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Time, err = p.optTime("time"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Picture:     req.Picture,
		EventType:   req.EventType,
	}
	if err := h.repo.Create(r.Context(), event); err != nil {
		writeRepoError(w, r, h.log, err, "Event")
		return
	}
	writeJSON(w, http.StatusCreated, newEventView(event, eventDateLayout))
}

func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, r, h.log, err, "Event")
		return
	}
	writeJSON(w, http.StatusOK, newEventView(event, eventDateHTTP))
}

func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
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

	req := models.UpdateEventRequest{
		Title:       p.optString("title"),
		Description: p.optString("description"),
		ClearDate:   p.blank("date"),
		ClearTime:   p.blank("time"),
		Picture:     p.optString("picture"),
		EventType:   p.optString("event_type"),
	}
	if req.Date, err = p.optDate("date"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Time, err = p.optTime("time"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.repo.Update(r.Context(), id, &req)
	if err != nil {
		writeRepoError(w, r, h.log, err, "Event")
		return
	}
	writeJSON(w, http.StatusOK, newEventView(event, eventDateLayout))
}

func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, r, h.log, err, "Event")
		return
	}
	writeDeleted(w, "Event", id)
}
