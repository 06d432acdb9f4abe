package repository

import (
	"context"
	"time"

	"github.com/paulogil93/habitua-te-api/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventRepository defines the interface for event data access
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uint) (*models.Event, error)
	Update(ctx context.Context, id uint, req *models.UpdateEventRequest) (*models.Event, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Event, error)
	// ListByType returns events of one type ordered by date.
	ListByType(ctx context.Context, eventType string, descending bool) ([]models.Event, error)
	// ListUpcoming returns events of one type dated strictly after day,
	// soonest first.
	ListUpcoming(ctx context.Context, eventType string, day time.Time) ([]models.Event, error)
}

type eventRepository struct {
	store
}

var _ EventRepository = (*eventRepository)(nil)

func NewEventRepository(db *gorm.DB, log zerolog.Logger) EventRepository {
	return &eventRepository{store: newStore(db, log, "events")}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	if err := create(ctx, r.db, event); err != nil {
		return r.fail(err, "Failed to create event", 0)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	event, err := getByID[models.Event](ctx, r.db, id)
	if err != nil {
		return nil, r.fail(err, "Failed to get event by ID", id)
	}
	return event, nil
}

func (r *eventRepository) Update(ctx context.Context, id uint, req *models.UpdateEventRequest) (*models.Event, error) {
	event, err := update(ctx, r.db, id, func(e *models.Event) {
		if req.Title != nil {
			e.Title = *req.Title
		}
		if req.Description != nil {
			e.Description = *req.Description
		}
		switch {
		case req.ClearDate:
			e.Date = nil
		case req.Date != nil:
			e.Date = req.Date
		}
		switch {
		case req.ClearTime:
			e.Time = nil
		case req.Time != nil:
			e.Time = req.Time
		}
		if req.Picture != nil {
			e.Picture = req.Picture
		}
		if req.EventType != nil {
			e.EventType = *req.EventType
		}
	})
	if err != nil {
		return nil, r.fail(err, "Failed to update event", id)
	}
	return event, nil
}

func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	if err := deleteByID[models.Event](ctx, r.db, id); err != nil {
		return r.fail(err, "Failed to delete event", id)
	}
	return nil
}

func (r *eventRepository) List(ctx context.Context) ([]models.Event, error) {
	events, err := listAll[models.Event](ctx, r.db)
	if err != nil {
		return nil, r.fail(err, "Failed to list events", 0)
	}
	return events, nil
}

func (r *eventRepository) ListByType(ctx context.Context, eventType string, descending bool) ([]models.Event, error) {
	events := make([]models.Event, 0)
	err := r.db.WithContext(ctx).
		Where(map[string]interface{}{"event_type": eventType}).
		Order(byDate(descending)).
		Find(&events).Error
	if err != nil {
		return nil, r.fail(err, "Failed to list events by type", 0)
	}
	return events, nil
}

func (r *eventRepository) ListUpcoming(ctx context.Context, eventType string, day time.Time) ([]models.Event, error) {
	y, m, d := day.Date()
	after := datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))

	events := make([]models.Event, 0)
	err := r.db.WithContext(ctx).
		Where(map[string]interface{}{"event_type": eventType}).
		Where(clause.Gt{Column: clause.Column{Name: "date"}, Value: after}).
		Order(byDate(false)).
		Find(&events).Error
	if err != nil {
		return nil, r.fail(err, "Failed to list upcoming events", 0)
	}
	return events, nil
}

func byDate(descending bool) clause.OrderBy {
	return clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: "date"}, Desc: descending},
		{Column: clause.Column{Name: "id"}, Desc: descending},
	}}
}
