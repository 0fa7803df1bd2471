package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Date        string `json:"date"`
	Organizer   string `json:"organizer"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.Organizer) == "" {
		errs = append(errs, "organizer is required")
	}
	if strings.TrimSpace(c.Date) == "" {
		errs = append(errs, "date is required")
	}
	return errs
}

// CreateEventResponse is the data of POST /events.
type CreateEventResponse struct {
	EventID int64 `json:"event_id"`
}

// ListEventsResponse is the data of GET /events.
type ListEventsResponse struct {
	Events []*domain.Event `json:"events"`
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  CreateEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// EventController serves the event store.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

// NewEventController creates an EventController with the given logger and service.
func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Store a new event. The date must be YYYY-MM-DD.
// @Tags events
// @Accept json
// @Produce json
// @Param body body CreateEventRequest true "Event"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the new event id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := domain.NewEvent(req.Title, req.Description, req.Date, req.Organizer, req.IsPublic)
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateEventResponse{EventID: event.ID})
}

// ListEvents godoc
// @Summary Query events
// @Description List events ordered by date then id. All filters are optional.
// @Tags events
// @Produce json
// @Param id query int false "Event id"
// @Param is_public query bool false "Visibility"
// @Param organizer query string false "Organizer username"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data.events contains the matching events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter domain.EventFilter
	if raw := q.Get("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "id must be an integer")
			return
		}
		filter.ID = &id
	}
	if raw := q.Get("is_public"); raw != "" {
		isPublic, err := strconv.ParseBool(raw)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "is_public must be a boolean")
			return
		}
		filter.IsPublic = &isPublic
	}
	filter.Organizer = q.Get("organizer")

	events, err := c.Service.ListEvents(r.Context(), filter)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Events: events})
}
