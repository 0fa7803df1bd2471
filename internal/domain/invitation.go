package domain

import (
	"context"
	"errors"
)

// ErrDuplicateInvitation is returned when an (event, invitee) pair already has an invitation row.
var ErrDuplicateInvitation = errors.New("invitation already exists")

// Participation statuses. Any other non-empty value supplied by an invitee is stored as-is.
const (
	StatusPending          = "Pending"
	StatusParticipate      = "Participate"
	StatusMaybeParticipate = "Maybe Participate"
	StatusDeclined         = "Don't Participate"
)

// Invitation links an invitee to an event with a participation status.
// At most one row exists per (EventID, Invitee).
// swagger:model Invitation
type Invitation struct {
	ID      int64  `json:"id"`
	EventID int64  `json:"event_id"`
	Invitee string `json:"invitee"`
	Status  string `json:"status"`
}

// NewInvitation returns a new Invitation. ID is set by the repository on create.
func NewInvitation(eventID int64, invitee, status string) *Invitation {
	return &Invitation{
		EventID: eventID,
		Invitee: invitee,
		Status:  status,
	}
}

// InvitationFilter narrows invitation queries. Nil or empty fields are not applied.
type InvitationFilter struct {
	EventID *int64
	Invitee string
	Status  string
}

// InvitationRepository defines storage operations for invitations.
type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByEventAndInvitee(ctx context.Context, eventID int64, invitee string) (*Invitation, error)
	List(ctx context.Context, filter InvitationFilter) ([]*Invitation, error)
	UpdateStatus(ctx context.Context, eventID int64, invitee, status string) (*Invitation, error)
}

// InvitationService defines the business logic of the invitation store.
type InvitationService interface {
	// CreateInvitation creates the row for (eventID, invitee). Returns (inv, created, err): created is false when the row already existed, in which case the stored row is returned unchanged.
	CreateInvitation(ctx context.Context, inv *Invitation) (*Invitation, bool, error)
	ListInvitations(ctx context.Context, filter InvitationFilter) ([]*Invitation, error)
	UpdateStatus(ctx context.Context, eventID int64, invitee, status string) (*Invitation, error)
}
