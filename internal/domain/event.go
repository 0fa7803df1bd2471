package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller may not access the requested resource.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidInput is returned when the request is invalid.
var ErrInvalidInput = errors.New("invalid input")

// DateLayout is the wire and storage format of event dates.
const DateLayout = "2006-01-02"

// Visibility labels rendered for events.
const (
	VisibilityPublic  = "Public"
	VisibilityPrivate = "Private"
)

// Event is a planned event created by its organizer. Immutable once created.
// swagger:model Event
type Event struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Organizer   string `json:"organizer"`
	IsPublic    bool   `json:"is_public"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(title, description, date, organizer string, isPublic bool) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Date:        date,
		Organizer:   organizer,
		IsPublic:    isPublic,
	}
}

// Visibility returns the visibility label of the event.
func (e *Event) Visibility() string {
	return VisibilityLabel(e.IsPublic)
}

// VisibilityLabel maps the public flag to its label.
func VisibilityLabel(isPublic bool) string {
	if isPublic {
		return VisibilityPublic
	}
	return VisibilityPrivate
}

// EventFilter narrows event queries. Nil or empty fields are not applied.
type EventFilter struct {
	ID        *int64
	IsPublic  *bool
	Organizer string
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
}

// EventService defines the business logic of the event store.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
}
