package domain

import (
	"context"
	"errors"
	"fmt"
)

// ErrMalformedPayload is wrapped by StoreError when a store answered with a body that could not be decoded.
var ErrMalformedPayload = errors.New("malformed store payload")

// Store names used in StoreError.
const (
	StoreUsers       = "users"
	StoreEvents      = "events"
	StoreInvitations = "invitations"
	StoreCalendars   = "calendars"
)

// StoreError describes a failed call to a backing store.
//
// StatusCode is 0 when the store could not be reached. Otherwise it holds the
// status the store answered with; a 2xx status with a bad or empty payload
// wraps ErrMalformedPayload or ErrNotFound.
type StoreError struct {
	Store      string
	Op         string
	StatusCode int
	Err        error
}

func (e *StoreError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: store unreachable: %v", e.Store, e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: status %d: %v", e.Store, e.Op, e.StatusCode, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Unreachable reports whether the store never answered.
func (e *StoreError) Unreachable() bool { return e.StatusCode == 0 }

// UserDirectory is the planner's view of the user store.
type UserDirectory interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
}

// EventStore is the planner's view of the event store.
type EventStore interface {
	CreateEvent(ctx context.Context, event *Event) (int64, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
	// GetEvent returns a StoreError wrapping ErrNotFound when the store has no such event.
	GetEvent(ctx context.Context, id int64) (*Event, error)
}

// InvitationStore is the planner's view of the invitation store.
type InvitationStore interface {
	CreateInvitation(ctx context.Context, inv *Invitation) error
	ListInvitations(ctx context.Context, filter InvitationFilter) ([]*Invitation, error)
	UpdateInvitationStatus(ctx context.Context, eventID int64, invitee, status string) error
}

// CalendarShareStore is the planner's view of the calendar share store.
type CalendarShareStore interface {
	ShareCalendar(ctx context.Context, owner, sharee string) error
	// SharedWith returns a StoreError wrapping ErrNotFound when the owner has no share record.
	SharedWith(ctx context.Context, owner string) ([]string, error)
}
