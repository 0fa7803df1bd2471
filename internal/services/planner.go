package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"eventplanner/internal/domain"
)

// InviteSeparator separates usernames in CreateEventInput.Invites.
const InviteSeparator = ";"

// Policies selects the failure policy of each aggregation.
type Policies struct {
	CreateEvent domain.FailurePolicy
	Calendar    domain.FailurePolicy
	EventDetail domain.FailurePolicy
	Inbox       domain.FailurePolicy
}

// DefaultPolicies keeps event creation strict and every read lenient.
func DefaultPolicies() Policies {
	return Policies{
		CreateEvent: domain.AbortOnFirstError,
		Calendar:    domain.BestEffortSkip,
		EventDetail: domain.BestEffortSkip,
		Inbox:       domain.BestEffortSkip,
	}
}

// PlannerDeps are the collaborators of the planner. Email may be nil.
type PlannerDeps struct {
	Users       domain.UserDirectory
	Events      domain.EventStore
	Invitations domain.InvitationStore
	Calendars   domain.CalendarShareStore
	Email       domain.EmailService
	Logger      *slog.Logger
}

type planner struct {
	users       domain.UserDirectory
	events      domain.EventStore
	invitations domain.InvitationStore
	calendars   domain.CalendarShareStore
	email       domain.EmailService
	// recipientDomain turns a bare username into username@recipientDomain for notices.
	recipientDomain string
	policies        Policies
	logger          *slog.Logger
}

// NewPlanner creates the PlannerService aggregating the four stores.
func NewPlanner(deps PlannerDeps, policies Policies, recipientDomain string) domain.PlannerService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &planner{
		users:           deps.Users,
		events:          deps.Events,
		invitations:     deps.Invitations,
		calendars:       deps.Calendars,
		email:           deps.Email,
		recipientDomain: strings.TrimPrefix(strings.TrimSpace(recipientDomain), "@"),
		policies:        policies,
		logger:          logger,
	}
}

func (p *planner) Register(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	return p.users.Register(ctx, strings.TrimSpace(username), password)
}

func (p *planner) Login(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return domain.ErrInvalidCredentials
	}
	return p.users.Login(ctx, strings.TrimSpace(username), password)
}

func (p *planner) Home(ctx context.Context, requester string) ([]domain.EventSummary, error) {
	public := true
	events, err := p.events.ListEvents(ctx, domain.EventFilter{IsPublic: &public})
	if err != nil {
		return nil, err
	}
	out := make([]domain.EventSummary, 0, len(events))
	for _, e := range events {
		out = append(out, domain.EventSummary{ID: e.ID, Title: e.Title, Date: e.Date, Organizer: e.Organizer})
	}
	return out, nil
}

// SplitInvites splits a ';'-separated invite list, trimming whitespace and dropping empty entries.
// Order is kept and duplicates are not removed.
func SplitInvites(invites string) []string {
	var out []string
	for _, part := range strings.Split(invites, InviteSeparator) {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// CreateEvent creates the event, one Pending invitation per invitee, then a
// Participate self-invitation unless the organizer is already listed. A failure
// after the event exists leaves everything written so far in place.
func (p *planner) CreateEvent(ctx context.Context, requester string, in domain.CreateEventInput) (*domain.CreateEventResult, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if err := ValidateDate(strings.TrimSpace(in.Date)); err != nil {
		return nil, err
	}

	event := domain.NewEvent(strings.TrimSpace(in.Title), in.Description, strings.TrimSpace(in.Date), requester, in.IsPublic)
	eventID, err := p.events.CreateEvent(ctx, event)
	if err != nil {
		return nil, err
	}
	event.ID = eventID
	result := &domain.CreateEventResult{EventID: eventID, Invitations: []*domain.Invitation{}}

	invitees := SplitInvites(in.Invites)
	selfListed := false
	for _, invitee := range invitees {
		if invitee == requester {
			selfListed = true
		}
	}

	plan := make([]*domain.Invitation, 0, len(invitees)+1)
	for _, invitee := range invitees {
		plan = append(plan, domain.NewInvitation(eventID, invitee, domain.StatusPending))
	}
	// An organizer who listed themselves keeps the Pending row assigned above.
	if !selfListed {
		plan = append(plan, domain.NewInvitation(eventID, requester, domain.StatusParticipate))
	}

	for _, inv := range plan {
		if err := p.invitations.CreateInvitation(ctx, inv); err != nil {
			if !p.tolerate(ctx, p.policies.CreateEvent, err, "invitation skipped", "event_id", eventID, "invitee", inv.Invitee) {
				return result, err
			}
			continue
		}
		result.Invitations = append(result.Invitations, inv)
	}

	p.notifyInvitees(ctx, event, result.Invitations)
	return result, nil
}

func (p *planner) notifyInvitees(ctx context.Context, event *domain.Event, invs []*domain.Invitation) {
	if p.email == nil {
		return
	}
	for _, inv := range invs {
		if inv.Invitee == event.Organizer {
			continue
		}
		addr := p.recipientAddress(inv.Invitee)
		if addr == "" {
			continue
		}
		data := &domain.InvitationEmailData{
			Email:     addr,
			Invitee:   inv.Invitee,
			Organizer: event.Organizer,
			EventID:   event.ID,
			Title:     event.Title,
			Date:      event.Date,
			IsPublic:  event.IsPublic,
		}
		if err := p.email.SendInvitationNotice(ctx, data); err != nil {
			p.logger.WarnContext(ctx, "invitation notice not sent", "event_id", event.ID, "invitee", inv.Invitee, "err", err)
		}
	}
}

func (p *planner) recipientAddress(username string) string {
	if strings.Contains(username, "@") {
		return username
	}
	if p.recipientDomain == "" {
		return ""
	}
	return username + "@" + p.recipientDomain
}

// Calendar lists owner's Participate then Maybe Participate events. Owner
// defaults to the requester. A requester outside the owner's share set, or a
// failed share lookup, gets a forbidden view.
func (p *planner) Calendar(ctx context.Context, requester, owner string) (*domain.CalendarView, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		owner = requester
	}
	view := &domain.CalendarView{Owner: owner, Entries: []domain.CalendarEntry{}}

	if owner != requester {
		members, err := p.calendars.SharedWith(ctx, owner)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				p.logger.WarnContext(ctx, "calendar share lookup failed", append(storeAttrs(err), "owner", owner, "err", err)...)
			}
			view.Forbidden = true
			return view, nil
		}
		share := domain.CalendarShare{Owner: owner, SharedWith: members}
		if !share.Contains(requester) {
			view.Forbidden = true
			return view, nil
		}
	}

	var rows []*domain.Invitation
	for _, status := range []string{domain.StatusParticipate, domain.StatusMaybeParticipate} {
		invs, err := p.invitations.ListInvitations(ctx, domain.InvitationFilter{Invitee: owner, Status: status})
		if err != nil {
			if !p.tolerate(ctx, p.policies.Calendar, err, "calendar sub-query skipped", "owner", owner, "status", status) {
				return nil, err
			}
			continue
		}
		rows = append(rows, invs...)
	}

	for _, inv := range rows {
		event, err := p.events.GetEvent(ctx, inv.EventID)
		if err != nil {
			if !p.tolerate(ctx, p.policies.Calendar, err, "calendar row skipped", "owner", owner, "event_id", inv.EventID) {
				return nil, err
			}
			continue
		}
		view.Entries = append(view.Entries, domain.CalendarEntry{
			EventID:    inv.EventID,
			Title:      event.Title,
			Date:       event.Date,
			Organizer:  event.Organizer,
			Status:     inv.Status,
			Visibility: event.Visibility(),
		})
	}
	return view, nil
}

// SharedWith returns the requester's share set; a missing record or failed lookup yields an empty set.
func (p *planner) SharedWith(ctx context.Context, requester string) ([]string, error) {
	members, err := p.calendars.SharedWith(ctx, requester)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			p.logger.WarnContext(ctx, "calendar share lookup failed", append(storeAttrs(err), "owner", requester, "err", err)...)
		}
		return []string{}, nil
	}
	return members, nil
}

func (p *planner) ShareCalendar(ctx context.Context, requester, sharee string) error {
	sharee = strings.TrimSpace(sharee)
	if sharee == "" {
		return fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if sharee == requester {
		return fmt.Errorf("%w: cannot share a calendar with yourself", domain.ErrInvalidInput)
	}
	return p.calendars.ShareCalendar(ctx, requester, sharee)
}

// EventDetail resolves authorized = invited OR public. The roster keeps store order
// and is only disclosed to authorized requesters.
func (p *planner) EventDetail(ctx context.Context, requester string, eventID int64) (*domain.EventDetailView, error) {
	invs, err := p.invitations.ListInvitations(ctx, domain.InvitationFilter{EventID: &eventID})
	if err != nil {
		if !p.tolerate(ctx, p.policies.EventDetail, err, "event roster unavailable", "event_id", eventID) {
			return nil, err
		}
		invs = nil
	}

	invited := false
	for _, inv := range invs {
		if inv.Invitee == requester {
			invited = true
			break
		}
	}

	event, err := p.events.GetEvent(ctx, eventID)
	if err != nil {
		if !p.tolerate(ctx, p.policies.EventDetail, err, "event unavailable", "event_id", eventID) {
			return nil, err
		}
		return &domain.EventDetailView{Authorized: invited}, nil
	}

	if !invited && !event.IsPublic {
		return &domain.EventDetailView{Authorized: false}, nil
	}

	roster := make([]domain.RosterEntry, 0, len(invs))
	for _, inv := range invs {
		roster = append(roster, domain.RosterEntry{Invitee: inv.Invitee, Status: inv.Status})
	}
	return &domain.EventDetailView{
		Authorized: true,
		Event: &domain.EventDetail{
			ID:          event.ID,
			Title:       event.Title,
			Description: event.Description,
			Date:        event.Date,
			Organizer:   event.Organizer,
			Visibility:  event.Visibility(),
			Roster:      roster,
		},
	}, nil
}

// Inbox lists the events the requester has a Pending invitation to.
func (p *planner) Inbox(ctx context.Context, requester string) ([]domain.InboxItem, error) {
	items := []domain.InboxItem{}
	invs, err := p.invitations.ListInvitations(ctx, domain.InvitationFilter{Invitee: requester, Status: domain.StatusPending})
	if err != nil {
		if !p.tolerate(ctx, p.policies.Inbox, err, "inbox query failed", "invitee", requester) {
			return nil, err
		}
		return items, nil
	}

	for _, inv := range invs {
		event, err := p.events.GetEvent(ctx, inv.EventID)
		if err != nil {
			if !p.tolerate(ctx, p.policies.Inbox, err, "inbox row skipped", "invitee", requester, "event_id", inv.EventID) {
				return nil, err
			}
			continue
		}
		items = append(items, domain.InboxItem{
			EventID:   inv.EventID,
			Title:     event.Title,
			Date:      event.Date,
			Organizer: event.Organizer,
			IsPublic:  event.IsPublic,
		})
	}
	return items, nil
}

func (p *planner) RespondToInvite(ctx context.Context, requester string, eventID int64, status string) error {
	status = strings.TrimSpace(status)
	if eventID <= 0 {
		return fmt.Errorf("%w: event must be positive", domain.ErrInvalidInput)
	}
	if status == "" {
		return fmt.Errorf("%w: status is required", domain.ErrInvalidInput)
	}
	return p.invitations.UpdateInvitationStatus(ctx, eventID, requester, status)
}

// tolerate reports whether err may be dropped under policy, logging it at WARN when it is.
func (p *planner) tolerate(ctx context.Context, policy domain.FailurePolicy, err error, msg string, attrs ...any) bool {
	if policy != domain.BestEffortSkip {
		return false
	}
	attrs = append(attrs, storeAttrs(err)...)
	p.logger.WarnContext(ctx, msg, append(attrs, "err", err)...)
	return true
}

func storeAttrs(err error) []any {
	var storeErr *domain.StoreError
	if !errors.As(err, &storeErr) {
		return nil
	}
	return []any{"store", storeErr.Store, "op", storeErr.Op, "status", storeErr.StatusCode}
}
