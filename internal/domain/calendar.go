package domain

import "context"

// CalendarShare is the set of users an owner granted calendar-read access to.
// swagger:model CalendarShare
type CalendarShare struct {
	Owner      string   `json:"owner"`
	SharedWith []string `json:"shared_with"`
}

// Contains reports whether username is in the share set.
func (c *CalendarShare) Contains(username string) bool {
	for _, u := range c.SharedWith {
		if u == username {
			return true
		}
	}
	return false
}

// CalendarRepository defines storage operations for calendar shares.
type CalendarRepository interface {
	// Share adds sharee to the owner's share set. Adding an existing member is a no-op.
	Share(ctx context.Context, owner, sharee string) error
	// SharedWith returns the owner's share set, or ErrNotFound when it is empty.
	SharedWith(ctx context.Context, owner string) ([]string, error)
}

// CalendarService defines the business logic of the calendar share store.
type CalendarService interface {
	Share(ctx context.Context, owner, sharee string) error
	GetShare(ctx context.Context, owner string) (*CalendarShare, error)
}
