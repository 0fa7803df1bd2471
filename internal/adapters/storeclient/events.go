package storeclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"eventplanner/internal/domain"
)

// EventClient calls the event store.
type EventClient struct {
	client
}

var _ domain.EventStore = (*EventClient)(nil)

// NewEventClient returns a client for the event store at baseURL.
func NewEventClient(baseURL string, httpClient *http.Client) *EventClient {
	return &EventClient{client: newClient(domain.StoreEvents, baseURL, httpClient)}
}

type createEventRequest struct {
	Date        string `json:"date"`
	Organizer   string `json:"organizer"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

type createEventResponse struct {
	EventID int64 `json:"event_id"`
}

type listEventsResponse struct {
	Events []*domain.Event `json:"events"`
}

func (c *EventClient) CreateEvent(ctx context.Context, event *domain.Event) (int64, error) {
	body := createEventRequest{
		Date:        event.Date,
		Organizer:   event.Organizer,
		Title:       event.Title,
		Description: event.Description,
		IsPublic:    event.IsPublic,
	}
	var out createEventResponse
	if err := c.do(ctx, "create", http.MethodPost, "/events", nil, body, &out, http.StatusCreated); err != nil {
		return 0, err
	}
	if out.EventID == 0 {
		return 0, &domain.StoreError{Store: c.store, Op: "create", StatusCode: http.StatusCreated, Err: fmt.Errorf("%w: missing event_id", domain.ErrMalformedPayload)}
	}
	return out.EventID, nil
}

func (c *EventClient) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	q := url.Values{}
	if filter.ID != nil {
		q.Set("id", strconv.FormatInt(*filter.ID, 10))
	}
	if filter.IsPublic != nil {
		q.Set("is_public", strconv.FormatBool(*filter.IsPublic))
	}
	if filter.Organizer != "" {
		q.Set("organizer", filter.Organizer)
	}
	var out listEventsResponse
	if err := c.do(ctx, "query", http.MethodGet, "/events", q, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	if out.Events == nil {
		out.Events = []*domain.Event{}
	}
	return out.Events, nil
}

func (c *EventClient) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	events, err := c.ListEvents(ctx, domain.EventFilter{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, &domain.StoreError{Store: c.store, Op: "get", StatusCode: http.StatusOK, Err: fmt.Errorf("event %d: %w", id, domain.ErrNotFound)}
	}
	return events[0], nil
}
