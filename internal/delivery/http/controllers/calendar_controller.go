package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// ShareRequest is the request body for PUT /share.
type ShareRequest struct {
	Owner      string `json:"owner"`
	SharedWith string `json:"shared_with"`
}

// Validate implements Validator.
func (s ShareRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Owner) == "" {
		errs = append(errs, "owner is required")
	}
	if strings.TrimSpace(s.SharedWith) == "" {
		errs = append(errs, "shared_with is required")
	}
	return errs
}

// CalendarShareSuccessResponse is the success response envelope carrying a share set.
type CalendarShareSuccessResponse struct {
	Data  *domain.CalendarShare `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// CalendarController serves the calendar share store.
type CalendarController struct {
	Logger  *slog.Logger
	Service domain.CalendarService
}

// NewCalendarController creates a CalendarController with the given logger and service.
func NewCalendarController(logger *slog.Logger, svc domain.CalendarService) *CalendarController {
	return &CalendarController{
		Logger:  logger,
		Service: svc,
	}
}

// Share godoc
// @Summary Share a calendar
// @Description Grant shared_with read access to owner's calendar. Sharing twice is a no-op.
// @Tags calendars
// @Accept json
// @Produce json
// @Param body body ShareRequest true "Share"
// @Success 200 {object} controllers.CalendarShareSuccessResponse "data contains the owner's share set"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /share [put]
func (c *CalendarController) Share(w http.ResponseWriter, r *http.Request) {
	var req ShareRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.Share(r.Context(), req.Owner, req.SharedWith); err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	share, err := c.Service.GetShare(r.Context(), req.Owner)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, share)
}

// GetShare godoc
// @Summary Get an owner's share set
// @Tags calendars
// @Produce json
// @Param owner query string true "Calendar owner"
// @Success 200 {object} controllers.CalendarShareSuccessResponse "data contains the sorted share set"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (shared with nobody)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /calendars [get]
func (c *CalendarController) GetShare(w http.ResponseWriter, r *http.Request) {
	share, err := c.Service.GetShare(r.Context(), r.URL.Query().Get("owner"))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, share)
}
