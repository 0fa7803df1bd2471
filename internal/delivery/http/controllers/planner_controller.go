package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
)

// NewEventRequest is the request body for POST /event. Invites is a ';'-separated list of usernames.
type NewEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	IsPublic    bool   `json:"is_public"`
	Invites     string `json:"invites"`
}

// Validate implements Validator.
func (n NewEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(n.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(n.Date) == "" {
		errs = append(errs, "date is required")
	}
	return errs
}

// CalendarRequest is the request body for POST /calendar. An empty calendar_user means the requester.
type CalendarRequest struct {
	CalendarUser string `json:"calendar_user"`
}

// ShareWithRequest is the request body for POST /share.
type ShareWithRequest struct {
	Username string `json:"username"`
}

// Validate implements Validator.
func (s ShareWithRequest) Validate() []string {
	if strings.TrimSpace(s.Username) == "" {
		return []string{"username is required"}
	}
	return nil
}

// RespondRequest is the request body for POST /invites.
type RespondRequest struct {
	Event  int64  `json:"event"`
	Status string `json:"status"`
}

// Validate implements Validator.
func (rr RespondRequest) Validate() []string {
	var errs []string
	if rr.Event <= 0 {
		errs = append(errs, "event must be positive")
	}
	if strings.TrimSpace(rr.Status) == "" {
		errs = append(errs, "status is required")
	}
	return errs
}

// SessionResponse is the data of POST /login and POST /register.
type SessionResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	Username  string `json:"username"`
}

// SharedWithResponse is the data of GET /share.
type SharedWithResponse struct {
	SharedWith []string `json:"shared_with"`
}

// ShareResultResponse is the data of POST /share.
type ShareResultResponse struct {
	Success bool `json:"success"`
}

// RespondResponse is the data of POST /invites. The inbox is always re-assembled.
type RespondResponse struct {
	Updated bool               `json:"updated"`
	Error   string             `json:"error,omitempty"`
	Invites []domain.InboxItem `json:"invites"`
}

// SessionSuccessResponse is the success response envelope for POST /login and POST /register (200).
type SessionSuccessResponse struct {
	Data  SessionResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// HomeSuccessResponse is the success response envelope for GET / (200).
type HomeSuccessResponse struct {
	Data  []domain.EventSummary `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// CreateEventResultSuccessResponse is the success response envelope for POST /event (201).
type CreateEventResultSuccessResponse struct {
	Data  *domain.CreateEventResult `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// CalendarSuccessResponse is the success response envelope for GET|POST /calendar (200).
type CalendarSuccessResponse struct {
	Data  *domain.CalendarView `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// EventDetailSuccessResponse is the success response envelope for GET /event/{id} (200).
type EventDetailSuccessResponse struct {
	Data  *domain.EventDetailView `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// InboxSuccessResponse is the success response envelope for GET /invites (200).
type InboxSuccessResponse struct {
	Data  []domain.InboxItem `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// RespondSuccessResponse is the success response envelope for POST /invites (200).
type RespondSuccessResponse struct {
	Data  RespondResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// PlannerController serves the web front end. It issues session tokens and
// resolves every page through the planner for the requesting user.
type PlannerController struct {
	Logger       *slog.Logger
	Planner      domain.PlannerService
	Tokens       domain.TokenIssuer
	TokenExpiry  time.Duration
	SecureCookie bool
}

// NewPlannerController creates a PlannerController.
func NewPlannerController(logger *slog.Logger, planner domain.PlannerService, tokens domain.TokenIssuer, tokenExpiry time.Duration, secureCookie bool) *PlannerController {
	return &PlannerController{
		Logger:       logger,
		Planner:      planner,
		Tokens:       tokens,
		TokenExpiry:  tokenExpiry,
		SecureCookie: secureCookie,
	}
}

func (c *PlannerController) requester(w http.ResponseWriter, r *http.Request) (string, bool) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
	}
	return username, ok
}

// Register godoc
// @Summary Register and log in
// @Description Create an account in the user store and start a session. The token is also set as the planner_session cookie.
// @Tags session
// @Accept json
// @Produce json
// @Param body body CredentialsRequest true "Credentials"
// @Success 200 {object} controllers.SessionSuccessResponse "data contains the session token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: upstream_error"
// @Router /register [post]
func (c *PlannerController) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	username := strings.TrimSpace(req.Username)
	if err := c.Planner.Register(r.Context(), username, req.Password); err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	c.startSession(w, r, username)
}

// Login godoc
// @Summary Log in
// @Description Verify credentials against the user store and start a session. The token is also set as the planner_session cookie.
// @Tags session
// @Accept json
// @Produce json
// @Param body body CredentialsRequest true "Credentials"
// @Success 200 {object} controllers.SessionSuccessResponse "data contains the session token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: upstream_error"
// @Router /login [post]
func (c *PlannerController) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	username := strings.TrimSpace(req.Username)
	if err := c.Planner.Login(r.Context(), username, req.Password); err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	c.startSession(w, r, username)
}

func (c *PlannerController) startSession(w http.ResponseWriter, r *http.Request, username string) {
	token, err := c.Tokens.Issue(username, c.TokenExpiry)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.TokenExpiry.Seconds()),
		HttpOnly: true,
		Secure:   c.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	helpers.WriteJSONSuccess(w, http.StatusOK, SessionResponse{Token: token, TokenType: "Bearer", Username: username})
}

// Logout godoc
// @Summary Log out
// @Description Clear the planner_session cookie. Tokens are stateless, so a copied token stays valid until it expires.
// @Tags session
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router /logout [get]
func (c *PlannerController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"logged_out": true})
}

// Home godoc
// @Summary Public events
// @Tags planner
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.HomeSuccessResponse "data contains every public event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: upstream_error"
// @Router / [get]
func (c *PlannerController) Home(w http.ResponseWriter, r *http.Request) {
	requester, ok := c.requester(w, r)
	if !ok {
		return
	}
	events, err := c.Planner.Home(r.Context(), requester)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// CreateEvent godoc
// @Summary Create an event and invite people
// @Description The requester is the organizer and is added as Participate unless listed in invites. The first failing store call aborts the request; calls already made are not undone.
// @Tags planner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body NewEventRequest true "Event"
// @Success 201 {object} controllers.CreateEventResultSuccessResponse "data contains the event id and invitations"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: upstream_error"
// @Router /event [post]
func (c *PlannerController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	requester, ok := c.requester(w, r)
	if !ok {
		return
	}
	var req NewEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Planner.CreateEvent(r.Context(), requester, domain.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		IsPublic:    req.IsPublic,
		Invites:     req.Invites,
	})
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, result)
}

// Calendar godoc
// @Summary View a calendar
// @Description Events calendar_user participates or maybe participates in. Other users' calendars need a share; otherwise the view is forbidden and empty.
// @Tags planner
// @Produce json
// @Security BearerAuth
// @Param calendar_user query string false "Calendar owner, defaults to the requester"
// @Success 200 {object} controllers.CalendarSuccessResponse "data contains the calendar view"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /calendar [get]
func (c *PlannerController) Calendar(w http.ResponseWriter, r *http.Request) {
	requester, ok := c.requester(w, r)
	if !ok {
		return
	}
	owner := r.URL.Query().Get("calendar_user")
	if r.Method == http.MethodPost {
		var req CalendarRequest
		if !helpers.DecodeAndValidate(w, r, &req) {
			return
		}
		owner = req.CalendarUser
	}
	view, err := c.Planner.Calendar(r.Context(), requester, owner)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// SharedWith godoc
// @Summary Current calendar shares
// @Tags planner
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data.shared_with lists users who may read the requester's calendar"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /share [get]
func (c *PlannerController) SharedWith(w http.ResponseWriter, r *http.Request) {
	requester, ok := c.requester(w, r)
	if !ok {
		return
	}
	users, err := c.Planner.SharedWith(r.Context(), requester)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SharedWithResponse{SharedWith: users})
}

// ShareCalendar godoc
// @Summary Share the requester's calendar
// @Tags planner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ShareWithRequest true "User to share with"
// @Success 200 {object} helpers.APIResponse "data.success is true"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: upstream_error"
// @Router /share [post]
func (c *PlannerController) ShareCalendar(w http.ResponseWriter, r *http.Request) {
	requester, ok := c.requester(w, r)
	if !ok {
		return
	}
	var req ShareWithRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Planner.ShareCalendar(r.Context(), requester, req.Username); err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ShareResultResponse{Success: true})
}

// EventDetail godoc
// @Summary Event detail
// @Description Public events and events the requester is invited to include the roster. Otherwise authorized is false and event is null.
// @Tags planner
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event id"
// @Success 200 {object} controllers.EventDetailSuccessResponse "data contains the detail view"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /event/{id} [get]
func (c *PlannerController) EventDetail(w http.ResponseWriter, r *http.Request) {
	requester, ok := c.requester(w, r)
	if !ok {
		return
	}
	eventID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || eventID <= 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "id must be a positive integer")
		return
	}
	view, err := c.Planner.EventDetail(r.Context(), requester, eventID)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// Inbox godoc
// @Summary Pending invitations
// @Tags planner
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.InboxSuccessResponse "data contains pending invitations with event metadata"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: upstream_error (abort policy only)"
// @Router /invites [get]
func (c *PlannerController) Inbox(w http.ResponseWriter, r *http.Request) {
	requester, ok := c.requester(w, r)
	if !ok {
		return
	}
	items, err := c.Planner.Inbox(r.Context(), requester)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// RespondToInvite godoc
// @Summary Answer an invitation
// @Description Sets the requester's status for an event, then returns the inbox. A failed update is reported in data.error and the inbox is still returned.
// @Tags planner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RespondRequest true "Answer"
// @Success 200 {object} controllers.RespondSuccessResponse "data contains the update outcome and the inbox"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /invites [post]
func (c *PlannerController) RespondToInvite(w http.ResponseWriter, r *http.Request) {
	requester, ok := c.requester(w, r)
	if !ok {
		return
	}
	var req RespondRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	resp := RespondResponse{Updated: true}
	if err := c.Planner.RespondToInvite(r.Context(), requester, req.Event, req.Status); err != nil {
		middleware.LoggerFromContext(r.Context(), c.Logger).WarnContext(r.Context(), "invitation status not updated", "event_id", req.Event, "err", err)
		resp.Updated = false
		resp.Error = err.Error()
	}
	items, err := c.Planner.Inbox(r.Context(), requester)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	resp.Invites = items
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}
