package models

import (
	"gorm.io/datatypes"
)

// Conventional event types. The column itself accepts any value.
const (
	EventTypeNews  = "news"
	EventTypeEvent = "event"
)

// Event is either a news item or a dated community event
type Event struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"size:50;not null"`
	Description string          `json:"description" gorm:"not null"`
	Date        *datatypes.Date `json:"date" gorm:"index"`
	Time        *datatypes.Time `json:"time"`
	Picture     *string         `json:"picture"`
	EventType   string          `json:"event_type" gorm:"size:20;not null;index"`
}

// CreateEventRequest holds the parameters accepted when creating an event
type CreateEventRequest struct {
	Title       string `validate:"required,max=50"`
	Description string `validate:"required"`
	Date        *datatypes.Date
	Time        *datatypes.Time
	Picture     *string
	EventType   string `validate:"max=20"`
}

// UpdateEventRequest holds the parameters of a partial event update.
// ClearDate and ClearTime null the column when the parameter was sent empty.
type UpdateEventRequest struct {
	Title       *string `validate:"omitempty,max=50"`
	Description *string
	Date        *datatypes.Date
	ClearDate   bool
	Time        *datatypes.Time
	ClearTime   bool
	Picture     *string
	EventType   *string `validate:"omitempty,max=20"`
}
