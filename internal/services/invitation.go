package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventplanner/internal/domain"
)

type invitationService struct {
	invitationRepo domain.InvitationRepository
	contextTimeout time.Duration
}

// NewInvitationService creates the InvitationService of the invitation store.
func NewInvitationService(invitationRepo domain.InvitationRepository, timeout time.Duration) domain.InvitationService {
	return &invitationService{
		invitationRepo: invitationRepo,
		contextTimeout: timeout,
	}
}

func (s *invitationService) CreateInvitation(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv.Invitee = strings.TrimSpace(inv.Invitee)
	if inv.EventID <= 0 {
		return nil, false, fmt.Errorf("%w: event_id must be positive", domain.ErrInvalidInput)
	}
	if inv.Invitee == "" {
		return nil, false, fmt.Errorf("%w: invitee is required", domain.ErrInvalidInput)
	}
	if inv.Status == "" {
		inv.Status = domain.StatusPending
	}

	// One row per (event, invitee); repeating a create returns the stored row.
	if existing, err := s.invitationRepo.GetByEventAndInvitee(ctx, inv.EventID, inv.Invitee); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get invitation: %w", err)
	}

	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		if !errors.Is(err, domain.ErrDuplicateInvitation) {
			return nil, false, fmt.Errorf("create invitation: %w", err)
		}
		// Lost a race against a concurrent create.
		existing, getErr := s.invitationRepo.GetByEventAndInvitee(ctx, inv.EventID, inv.Invitee)
		if getErr != nil {
			return nil, false, fmt.Errorf("get invitation: %w", getErr)
		}
		return existing, false, nil
	}
	return inv, true, nil
}

func (s *invitationService) ListInvitations(ctx context.Context, filter domain.InvitationFilter) ([]*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	invs, err := s.invitationRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	return invs, nil
}

func (s *invitationService) UpdateStatus(ctx context.Context, eventID int64, invitee, status string) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	status = strings.TrimSpace(status)
	if status == "" {
		return nil, fmt.Errorf("%w: status is required", domain.ErrInvalidInput)
	}
	inv, err := s.invitationRepo.UpdateStatus(ctx, eventID, invitee, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update invitation status: %w", err)
	}
	return inv, nil
}
