package domain

import (
	"context"
	"fmt"
	"strings"
)

// FailurePolicy selects how a multi-step aggregation reacts to a failed step.
type FailurePolicy int

const (
	// AbortOnFirstError stops at the first failed step and returns its error.
	// Steps already performed stay performed.
	AbortOnFirstError FailurePolicy = iota
	// BestEffortSkip drops the failed step's contribution and carries on.
	BestEffortSkip
)

func (p FailurePolicy) String() string {
	switch p {
	case AbortOnFirstError:
		return "abort"
	case BestEffortSkip:
		return "skip"
	default:
		return fmt.Sprintf("FailurePolicy(%d)", int(p))
	}
}

// ParseFailurePolicy accepts "abort" or "skip" (case-insensitive).
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "abort", "abort-on-first-error":
		return AbortOnFirstError, nil
	case "skip", "best-effort-skip":
		return BestEffortSkip, nil
	default:
		return 0, fmt.Errorf("%w: unknown failure policy %q", ErrInvalidInput, s)
	}
}

// CreateEventInput is the organizer's request to create an event and invite people.
type CreateEventInput struct {
	Title       string
	Description string
	Date        string
	IsPublic    bool
	// Invites is a ';'-separated list of usernames.
	Invites string
}

// CreateEventResult reports the created event and the invitations written for it.
type CreateEventResult struct {
	EventID     int64         `json:"event_id"`
	Invitations []*Invitation `json:"invitations"`
}

// EventSummary is a row of the home feed.
type EventSummary struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Organizer string `json:"organizer"`
}

// CalendarEntry is one event on a user's calendar.
type CalendarEntry struct {
	EventID    int64  `json:"event_id"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	Organizer  string `json:"organizer"`
	Status     string `json:"status"`
	Visibility string `json:"visibility"`
}

// CalendarView is the assembled calendar of Owner as seen by the requester.
// Forbidden views never carry entries.
type CalendarView struct {
	Owner     string          `json:"owner"`
	Forbidden bool            `json:"forbidden"`
	Entries   []CalendarEntry `json:"entries"`
}

// RosterEntry is one invitee of an event with their status.
type RosterEntry struct {
	Invitee string `json:"invitee"`
	Status  string `json:"status"`
}

// EventDetail is the full view of an event including its roster.
type EventDetail struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Date        string        `json:"date"`
	Organizer   string        `json:"organizer"`
	Visibility  string        `json:"visibility"`
	Roster      []RosterEntry `json:"roster"`
}

// EventDetailView carries Event only when Authorized is true and the event could be fetched.
type EventDetailView struct {
	Authorized bool         `json:"authorized"`
	Event      *EventDetail `json:"event"`
}

// InboxItem is a pending invitation with its event metadata.
type InboxItem struct {
	EventID   int64  `json:"event_id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Organizer string `json:"organizer"`
	IsPublic  bool   `json:"is_public"`
}

// PlannerService aggregates the backing stores into page-level views.
// Every operation takes the requesting username explicitly.
type PlannerService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
	Home(ctx context.Context, requester string) ([]EventSummary, error)
	CreateEvent(ctx context.Context, requester string, in CreateEventInput) (*CreateEventResult, error)
	Calendar(ctx context.Context, requester, owner string) (*CalendarView, error)
	SharedWith(ctx context.Context, requester string) ([]string, error)
	ShareCalendar(ctx context.Context, requester, sharee string) error
	EventDetail(ctx context.Context, requester string, eventID int64) (*EventDetailView, error)
	Inbox(ctx context.Context, requester string) ([]InboxItem, error)
	RespondToInvite(ctx context.Context, requester string, eventID int64, status string) error
}
