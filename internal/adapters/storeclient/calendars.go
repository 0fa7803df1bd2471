package storeclient

import (
	"context"
	"net/http"
	"net/url"

	"eventplanner/internal/domain"
)

// CalendarClient calls the calendar share store.
type CalendarClient struct {
	client
}

var _ domain.CalendarShareStore = (*CalendarClient)(nil)

// NewCalendarClient returns a client for the calendar share store at baseURL.
func NewCalendarClient(baseURL string, httpClient *http.Client) *CalendarClient {
	return &CalendarClient{client: newClient(domain.StoreCalendars, baseURL, httpClient)}
}

type shareRequest struct {
	Owner      string `json:"owner"`
	SharedWith string `json:"shared_with"`
}

func (c *CalendarClient) ShareCalendar(ctx context.Context, owner, sharee string) error {
	return c.do(ctx, "share", http.MethodPut, "/share", nil,
		shareRequest{Owner: owner, SharedWith: sharee}, nil, http.StatusOK)
}

func (c *CalendarClient) SharedWith(ctx context.Context, owner string) ([]string, error) {
	var out domain.CalendarShare
	q := url.Values{"owner": []string{owner}}
	if err := c.do(ctx, "get", http.MethodGet, "/calendars", q, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	if out.SharedWith == nil {
		out.SharedWith = []string{}
	}
	return out.SharedWith, nil
}
