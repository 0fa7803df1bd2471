package storeclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"eventplanner/internal/domain"
)

// InvitationClient calls the invitation store.
type InvitationClient struct {
	client
}

var _ domain.InvitationStore = (*InvitationClient)(nil)

// NewInvitationClient returns a client for the invitation store at baseURL.
func NewInvitationClient(baseURL string, httpClient *http.Client) *InvitationClient {
	return &InvitationClient{client: newClient(domain.StoreInvitations, baseURL, httpClient)}
}

type createInvitationRequest struct {
	EventID int64  `json:"event_id"`
	Invitee string `json:"invitee"`
	Status  string `json:"status"`
}

type listInvitationsResponse struct {
	Invitations []*domain.Invitation `json:"invitations"`
}

// CreateInvitation treats an already existing (event, invitee) row as success.
func (c *InvitationClient) CreateInvitation(ctx context.Context, inv *domain.Invitation) error {
	body := createInvitationRequest{EventID: inv.EventID, Invitee: inv.Invitee, Status: inv.Status}
	return c.do(ctx, "create", http.MethodPost, "/invitations", nil, body, nil,
		http.StatusCreated, http.StatusOK)
}

func (c *InvitationClient) ListInvitations(ctx context.Context, filter domain.InvitationFilter) ([]*domain.Invitation, error) {
	q := url.Values{}
	if filter.Invitee != "" {
		q.Set("invitee", filter.Invitee)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.EventID != nil {
		q.Set("event", strconv.FormatInt(*filter.EventID, 10))
	}
	var out listInvitationsResponse
	if err := c.do(ctx, "query", http.MethodGet, "/invitations", q, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	if out.Invitations == nil {
		out.Invitations = []*domain.Invitation{}
	}
	return out.Invitations, nil
}

func (c *InvitationClient) UpdateInvitationStatus(ctx context.Context, eventID int64, invitee, status string) error {
	path := "/invitations/" + strconv.FormatInt(eventID, 10) + "/" + url.PathEscape(invitee)
	q := url.Values{"status": []string{status}}
	return c.do(ctx, "update status", http.MethodPatch, path, q, nil, nil, http.StatusOK)
}
