package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeEnvelope decodes the response envelope, unmarshalling data into out when non-nil.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, out any) *helpers.APIError {
	t.Helper()
	var env struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	if out != nil && env.Error == nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env.Error
}

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	user *domain.User
	err  error
}

func (f *fakeUserService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	events     []*domain.Event
	err        error
	lastFilter domain.EventFilter
	lastEvent  *domain.Event
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	f.lastEvent = event
	if f.err != nil {
		return f.err
	}
	event.ID = 42
	return nil
}

func (f *fakeEventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	f.lastFilter = filter
	return f.events, f.err
}

// fakeInvitationService implements domain.InvitationService for handler tests.
type fakeInvitationService struct {
	inv        *domain.Invitation
	created    bool
	list       []*domain.Invitation
	err        error
	lastFilter domain.InvitationFilter
	lastUpdate [3]string
}

func (f *fakeInvitationService) CreateInvitation(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return f.inv, f.created, nil
}

func (f *fakeInvitationService) ListInvitations(ctx context.Context, filter domain.InvitationFilter) ([]*domain.Invitation, error) {
	f.lastFilter = filter
	return f.list, f.err
}

func (f *fakeInvitationService) UpdateStatus(ctx context.Context, eventID int64, invitee, status string) (*domain.Invitation, error) {
	f.lastUpdate = [3]string{strconv.FormatInt(eventID, 10), invitee, status}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Invitation{ID: 1, EventID: eventID, Invitee: invitee, Status: status}, nil
}

// fakeCalendarService implements domain.CalendarService for handler tests.
type fakeCalendarService struct {
	share    *domain.CalendarShare
	shareErr error
	getErr   error
	shared   [2]string
}

func (f *fakeCalendarService) Share(ctx context.Context, owner, sharee string) error {
	f.shared = [2]string{owner, sharee}
	return f.shareErr
}

func (f *fakeCalendarService) GetShare(ctx context.Context, owner string) (*domain.CalendarShare, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.share, nil
}
