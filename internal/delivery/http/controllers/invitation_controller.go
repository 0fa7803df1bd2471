package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// CreateInvitationRequest is the request body for POST /invitations. An empty status means Pending.
type CreateInvitationRequest struct {
	EventID int64  `json:"event_id"`
	Invitee string `json:"invitee"`
	Status  string `json:"status"`
}

// Validate implements Validator.
func (c CreateInvitationRequest) Validate() []string {
	var errs []string
	if c.EventID <= 0 {
		errs = append(errs, "event_id must be positive")
	}
	if strings.TrimSpace(c.Invitee) == "" {
		errs = append(errs, "invitee is required")
	}
	return errs
}

// ListInvitationsResponse is the data of GET /invitations.
type ListInvitationsResponse struct {
	Invitations []*domain.Invitation `json:"invitations"`
}

// InvitationSuccessResponse is the success response envelope carrying one invitation.
type InvitationSuccessResponse struct {
	Data  *domain.Invitation `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListInvitationsSuccessResponse is the success response envelope for GET /invitations (200).
type ListInvitationsSuccessResponse struct {
	Data  ListInvitationsResponse `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// InvitationController serves the invitation store.
type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

// NewInvitationController creates an InvitationController with the given logger and service.
func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateInvitation godoc
// @Summary Invite a user to an event
// @Description Idempotent: when the (event_id, invitee) row exists it is returned unchanged with 200.
// @Tags invitations
// @Accept json
// @Produce json
// @Param body body CreateInvitationRequest true "Invitation"
// @Success 201 {object} controllers.InvitationSuccessResponse "created"
// @Success 200 {object} controllers.InvitationSuccessResponse "already existed"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations [post]
func (c *InvitationController) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	var req CreateInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	inv, created, err := c.Service.CreateInvitation(r.Context(), domain.NewInvitation(req.EventID, req.Invitee, req.Status))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, inv)
}

// ListInvitations godoc
// @Summary Query invitations
// @Description List invitations in insertion order. All filters are optional.
// @Tags invitations
// @Produce json
// @Param invitee query string false "Invitee username"
// @Param status query string false "Participation status"
// @Param event query int false "Event id"
// @Success 200 {object} controllers.ListInvitationsSuccessResponse "data.invitations contains the matching rows"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations [get]
func (c *InvitationController) ListInvitations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.InvitationFilter{
		Invitee: strings.TrimSpace(q.Get("invitee")),
		Status:  q.Get("status"),
	}
	if raw := q.Get("event"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "event must be an integer")
			return
		}
		filter.EventID = &id
	}

	invs, err := c.Service.ListInvitations(r.Context(), filter)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	if invs == nil {
		invs = []*domain.Invitation{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListInvitationsResponse{Invitations: invs})
}

// UpdateStatus godoc
// @Summary Change an invitee's status
// @Tags invitations
// @Produce json
// @Param eventID path int true "Event id"
// @Param invitee path string true "Invitee username"
// @Param status query string true "New status"
// @Success 200 {object} controllers.InvitationSuccessResponse "data contains the updated row"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/{eventID}/{invitee} [patch]
func (c *InvitationController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(r.PathValue("eventID"), 10, 64)
	if err != nil || eventID <= 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventID must be a positive integer")
		return
	}
	invitee := strings.TrimSpace(r.PathValue("invitee"))
	if invitee == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invitee is required")
		return
	}
	inv, err := c.Service.UpdateStatus(r.Context(), eventID, invitee, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}
