package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invitationKey struct {
	eventID int64
	invitee string
}

// fakeInvitationRepo implements domain.InvitationRepository for tests.
type fakeInvitationRepo struct {
	rows   map[invitationKey]*domain.Invitation
	order  []invitationKey
	nextID int64
	// raceOnCreate simulates a concurrent writer inserting the row first.
	raceOnCreate bool
	getErr       error
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{rows: make(map[invitationKey]*domain.Invitation), nextID: 1}
}

func (f *fakeInvitationRepo) insert(inv *domain.Invitation) {
	inv.ID = f.nextID
	f.nextID++
	k := invitationKey{inv.EventID, inv.Invitee}
	cp := *inv
	f.rows[k] = &cp
	f.order = append(f.order, k)
}

func (f *fakeInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	k := invitationKey{inv.EventID, inv.Invitee}
	if f.raceOnCreate {
		f.raceOnCreate = false
		f.insert(&domain.Invitation{EventID: inv.EventID, Invitee: inv.Invitee, Status: domain.StatusDeclined})
	}
	if _, ok := f.rows[k]; ok {
		return domain.ErrDuplicateInvitation
	}
	f.insert(inv)
	return nil
}

func (f *fakeInvitationRepo) GetByEventAndInvitee(ctx context.Context, eventID int64, invitee string) (*domain.Invitation, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if r, ok := f.rows[invitationKey{eventID, invitee}]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInvitationRepo) List(ctx context.Context, filter domain.InvitationFilter) ([]*domain.Invitation, error) {
	out := []*domain.Invitation{}
	for _, k := range f.order {
		r := f.rows[k]
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

func (f *fakeInvitationRepo) UpdateStatus(ctx context.Context, eventID int64, invitee, status string) (*domain.Invitation, error) {
	r, ok := f.rows[invitationKey{eventID, invitee}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r.Status = status
	cp := *r
	return &cp, nil
}

func TestInvitationService_CreateInvitation_idempotent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeInvitationRepo()
	svc := NewInvitationService(repo, time.Second)

	inv, created, err := svc.CreateInvitation(ctx, domain.NewInvitation(42, " alice ", ""))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "alice", inv.Invitee)
	assert.Equal(t, domain.StatusPending, inv.Status, "empty status defaults to Pending")

	again, created, err := svc.CreateInvitation(ctx, domain.NewInvitation(42, "alice", domain.StatusParticipate))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, inv.ID, again.ID)
	assert.Equal(t, domain.StatusPending, again.Status, "existing row is returned unchanged")
	assert.Len(t, repo.rows, 1)
}

func TestInvitationService_CreateInvitation_lost_race(t *testing.T) {
	repo := newFakeInvitationRepo()
	repo.raceOnCreate = true
	svc := NewInvitationService(repo, time.Second)

	inv, created, err := svc.CreateInvitation(context.Background(), domain.NewInvitation(42, "alice", domain.StatusPending))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, domain.StatusDeclined, inv.Status)
}

func TestInvitationService_CreateInvitation_validation(t *testing.T) {
	svc := NewInvitationService(newFakeInvitationRepo(), time.Second)

	_, _, err := svc.CreateInvitation(context.Background(), domain.NewInvitation(0, "alice", ""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, _, err = svc.CreateInvitation(context.Background(), domain.NewInvitation(1, "  ", ""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvitationService_CreateInvitation_lookup_error(t *testing.T) {
	repo := newFakeInvitationRepo()
	repo.getErr = errors.New("db down")
	_, _, err := NewInvitationService(repo, time.Second).CreateInvitation(context.Background(), domain.NewInvitation(1, "alice", ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get invitation")
}

func TestInvitationService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := newFakeInvitationRepo()
	svc := NewInvitationService(repo, time.Second)
	_, _, err := svc.CreateInvitation(ctx, domain.NewInvitation(42, "alice", domain.StatusPending))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		inv, err := svc.UpdateStatus(ctx, 42, "alice", domain.StatusMaybeParticipate)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusMaybeParticipate, inv.Status)
	}
	assert.Len(t, repo.rows, 1)

	_, err = svc.UpdateStatus(ctx, 42, "alice", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateStatus(ctx, 42, "bob", domain.StatusParticipate)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvitationService_ListInvitations(t *testing.T) {
	ctx := context.Background()
	repo := newFakeInvitationRepo()
	svc := NewInvitationService(repo, time.Second)
	for _, name := range []string{"bob", "alice"} {
		_, _, err := svc.CreateInvitation(ctx, domain.NewInvitation(42, name, domain.StatusPending))
		require.NoError(t, err)
	}

	eventID := int64(42)
	invs, err := svc.ListInvitations(ctx, domain.InvitationFilter{EventID: &eventID})
	require.NoError(t, err)
	require.Len(t, invs, 2)
	assert.Equal(t, "bob", invs[0].Invitee)
	assert.Equal(t, "alice", invs[1].Invitee)
}
