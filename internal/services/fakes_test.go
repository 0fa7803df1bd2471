package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"sync"

	"eventplanner/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// bufferLogger returns a logger writing text records to the returned buffer.
func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

func unreachable(store, op string) error {
	return &domain.StoreError{Store: store, Op: op, Err: fmt.Errorf("dial tcp: connection refused")}
}

// fakeUserDirectory implements domain.UserDirectory for tests.
type fakeUserDirectory struct {
	passwords map[string]string
	err       error
}

func newFakeUserDirectory() *fakeUserDirectory {
	return &fakeUserDirectory{passwords: make(map[string]string)}
}

func (f *fakeUserDirectory) Register(ctx context.Context, username, password string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.passwords[username]; ok {
		return &domain.StoreError{Store: domain.StoreUsers, Op: "register", StatusCode: http.StatusBadRequest, Err: domain.ErrDuplicateUsername}
	}
	f.passwords[username] = password
	return nil
}

func (f *fakeUserDirectory) Login(ctx context.Context, username, password string) error {
	if f.err != nil {
		return f.err
	}
	if p, ok := f.passwords[username]; !ok || p != password {
		return &domain.StoreError{Store: domain.StoreUsers, Op: "login", StatusCode: http.StatusUnauthorized, Err: domain.ErrUnauthorized}
	}
	return nil
}

// fakeEventStore implements domain.EventStore for tests.
type fakeEventStore struct {
	mu        sync.Mutex
	events    map[int64]*domain.Event
	nextID    int64
	createErr error
	listErr   error
	getErr    map[int64]error
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[int64]*domain.Event), nextID: 1, getErr: make(map[int64]error)}
}

func (f *fakeEventStore) put(e *domain.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *e
	f.events[e.ID] = &cp
	if e.ID >= f.nextID {
		f.nextID = e.ID + 1
	}
}

func (f *fakeEventStore) CreateEvent(ctx context.Context, event *domain.Event) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *event
	cp.ID = f.nextID
	f.nextID++
	f.events[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeEventStore) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.Event{}
	for _, e := range f.events {
		if filter.ID != nil && e.ID != *filter.ID {
			continue
		}
		if filter.IsPublic != nil && e.IsPublic != *filter.IsPublic {
			continue
		}
		if filter.Organizer != "" && e.Organizer != filter.Organizer {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeEventStore) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	if err, ok := f.getErr[id]; ok {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, &domain.StoreError{Store: domain.StoreEvents, Op: "get", StatusCode: http.StatusOK, Err: domain.ErrNotFound}
	}
	cp := *e
	return &cp, nil
}

// fakeInvitationStore implements domain.InvitationStore with the store's one-row-per-pair rule.
type fakeInvitationStore struct {
	mu        sync.Mutex
	rows      []*domain.Invitation
	nextID    int64
	creates   int
	createErr func(inv *domain.Invitation) error
	listErr   func(filter domain.InvitationFilter) error
	updateErr error
}

func newFakeInvitationStore() *fakeInvitationStore {
	return &fakeInvitationStore{nextID: 1}
}

func (f *fakeInvitationStore) CreateInvitation(ctx context.Context, inv *domain.Invitation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		if err := f.createErr(inv); err != nil {
			return err
		}
	}
	for _, r := range f.rows {
		if r.EventID == inv.EventID && r.Invitee == inv.Invitee {
			return nil
		}
	}
	cp := *inv
	cp.ID = f.nextID
	f.nextID++
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeInvitationStore) ListInvitations(ctx context.Context, filter domain.InvitationFilter) ([]*domain.Invitation, error) {
	if f.listErr != nil {
		if err := f.listErr(filter); err != nil {
			return nil, err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.Invitation{}
	for _, r := range f.rows {
		if filter.EventID != nil && r.EventID != *filter.EventID {
			continue
		}
		if filter.Invitee != "" && r.Invitee != filter.Invitee {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeInvitationStore) UpdateInvitationStatus(ctx context.Context, eventID int64, invitee, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.EventID == eventID && r.Invitee == invitee {
			r.Status = status
			return nil
		}
	}
	return &domain.StoreError{Store: domain.StoreInvitations, Op: "update status", StatusCode: http.StatusNotFound, Err: domain.ErrNotFound}
}

// rowsFor returns the (invitee, status) pairs stored for eventID in insertion order.
func (f *fakeInvitationStore) rowsFor(eventID int64) [][2]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out [][2]string
	for _, r := range f.rows {
		if r.EventID == eventID {
			out = append(out, [2]string{r.Invitee, r.Status})
		}
	}
	return out
}

// fakeCalendarStore implements domain.CalendarShareStore for tests.
type fakeCalendarStore struct {
	shares map[string]map[string]bool
	err    error
}

func newFakeCalendarStore() *fakeCalendarStore {
	return &fakeCalendarStore{shares: make(map[string]map[string]bool)}
}

func (f *fakeCalendarStore) ShareCalendar(ctx context.Context, owner, sharee string) error {
	if f.err != nil {
		return f.err
	}
	if f.shares[owner] == nil {
		f.shares[owner] = make(map[string]bool)
	}
	f.shares[owner][sharee] = true
	return nil
}

func (f *fakeCalendarStore) SharedWith(ctx context.Context, owner string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	set := f.shares[owner]
	if len(set) == 0 {
		return nil, &domain.StoreError{Store: domain.StoreCalendars, Op: "get", StatusCode: http.StatusNotFound, Err: domain.ErrNotFound}
	}
	out := make([]string, 0, len(set))
	for u := range set {
		out = append(out, u)
	}
	sort.Strings(out)
	return out, nil
}

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	sent []*domain.InvitationEmailData
	err  error
}

func (f *fakeEmailService) SendInvitationNotice(ctx context.Context, data *domain.InvitationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// plannerFixture bundles a planner with its fakes.
type plannerFixture struct {
	users       *fakeUserDirectory
	events      *fakeEventStore
	invitations *fakeInvitationStore
	calendars   *fakeCalendarStore
	email       *fakeEmailService
	logs        *bytes.Buffer
	planner     domain.PlannerService
}

func newPlannerFixture(policies Policies) *plannerFixture {
	logger, logs := bufferLogger()
	f := &plannerFixture{
		users:       newFakeUserDirectory(),
		events:      newFakeEventStore(),
		invitations: newFakeInvitationStore(),
		calendars:   newFakeCalendarStore(),
		email:       &fakeEmailService{},
		logs:        logs,
	}
	f.planner = NewPlanner(PlannerDeps{
		Users:       f.users,
		Events:      f.events,
		Invitations: f.invitations,
		Calendars:   f.calendars,
		Email:       f.email,
		Logger:      logger,
	}, policies, "example.com")
	return f
}
