package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventplanner/internal/domain"
)

type calendarService struct {
	calendarRepo   domain.CalendarRepository
	contextTimeout time.Duration
}

// NewCalendarService creates the CalendarService of the calendar share store.
func NewCalendarService(calendarRepo domain.CalendarRepository, timeout time.Duration) domain.CalendarService {
	return &calendarService{
		calendarRepo:   calendarRepo,
		contextTimeout: timeout,
	}
}

func (s *calendarService) Share(ctx context.Context, owner, sharee string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	owner = strings.TrimSpace(owner)
	sharee = strings.TrimSpace(sharee)
	if owner == "" || sharee == "" {
		return fmt.Errorf("%w: owner and shared_with are required", domain.ErrInvalidInput)
	}
	if owner == sharee {
		return fmt.Errorf("%w: cannot share a calendar with its owner", domain.ErrInvalidInput)
	}
	if err := s.calendarRepo.Share(ctx, owner, sharee); err != nil {
		return fmt.Errorf("share calendar: %w", err)
	}
	return nil
}

func (s *calendarService) GetShare(ctx context.Context, owner string) (*domain.CalendarShare, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrInvalidInput)
	}
	members, err := s.calendarRepo.SharedWith(ctx, owner)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get calendar share: %w", err)
	}
	return &domain.CalendarShare{Owner: owner, SharedWith: members}, nil
}
