package http

import (
	"log/slog"
	"net/http"

	"eventplanner/internal/delivery/http/controllers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Swagger instance names registered by the docs package.
const (
	SwaggerPlanner = "planner"
	SwaggerStores  = "stores"
)

// Common carries what every service router wraps around its own routes.
type Common struct {
	Service            string
	Logger             *slog.Logger
	Metrics            *middleware.Metrics
	DB                 controllers.Pinger
	CORSAllowedOrigins []string
	SwaggerInstance    string
}

func (c Common) wrap(mux *http.ServeMux) http.Handler {
	mux.HandleFunc("GET /healthz", controllers.Health(c.Service, c.DB))
	if c.SwaggerInstance != "" {
		mux.Handle("/swagger/", httpSwagger.Handler(httpSwagger.InstanceName(c.SwaggerInstance)))
	}

	var h http.Handler = mux
	if c.Metrics != nil {
		mux.Handle("GET /metrics", c.Metrics.Handler())
		h = c.Metrics.Middleware(mux)
	}
	h = middleware.LoggingMiddleware(c.Logger, h)
	if len(c.CORSAllowedOrigins) > 0 {
		h = middleware.CORS(c.CORSAllowedOrigins, h)
	}
	return h
}

// NewPlannerRouter serves the web front end. Every page except the session
// routes needs an identity; login and register are rate limited per client.
func NewPlannerRouter(common Common, c *controllers.PlannerController, verifier domain.TokenVerifier, limiter *middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, common.Logger)

	mux.HandleFunc("POST /login", limiter.Limit("login", c.Login))
	mux.HandleFunc("POST /register", limiter.Limit("register", c.Register))
	mux.HandleFunc("GET /logout", c.Logout)

	mux.HandleFunc("GET /{$}", auth(c.Home))
	mux.HandleFunc("POST /event", auth(c.CreateEvent))
	mux.HandleFunc("GET /event/{id}", auth(c.EventDetail))
	mux.HandleFunc("GET /calendar", auth(c.Calendar))
	mux.HandleFunc("POST /calendar", auth(c.Calendar))
	mux.HandleFunc("GET /share", auth(c.SharedWith))
	mux.HandleFunc("POST /share", auth(c.ShareCalendar))
	mux.HandleFunc("GET /invites", auth(c.Inbox))
	mux.HandleFunc("POST /invites", auth(c.RespondToInvite))

	return common.wrap(mux)
}

// NewUserRouter serves the user store.
func NewUserRouter(common Common, c *controllers.UserController) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", c.Register)
	mux.HandleFunc("POST /login", c.Login)
	return common.wrap(mux)
}

// NewEventRouter serves the event store.
func NewEventRouter(common Common, c *controllers.EventController) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /events", c.CreateEvent)
	mux.HandleFunc("GET /events", c.ListEvents)
	return common.wrap(mux)
}

// NewInvitationRouter serves the invitation store.
func NewInvitationRouter(common Common, c *controllers.InvitationController) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /invitations", c.CreateInvitation)
	mux.HandleFunc("GET /invitations", c.ListInvitations)
	mux.HandleFunc("PATCH /invitations/{eventID}/{invitee}", c.UpdateStatus)
	return common.wrap(mux)
}

// NewCalendarRouter serves the calendar share store.
func NewCalendarRouter(common Common, c *controllers.CalendarController) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /share", c.Share)
	mux.HandleFunc("GET /calendars", c.GetShare)
	return common.wrap(mux)
}
