// Package app wires configuration, stores and routers into the eventplanner
// processes: the web front end and the four backing stores.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"eventplanner/config"
	_ "eventplanner/docs" // registers the swagger documents
	"eventplanner/internal/adapters/auth"
	"eventplanner/internal/adapters/email"
	"eventplanner/internal/adapters/storeclient"
	deliveryhttp "eventplanner/internal/delivery/http"
	"eventplanner/internal/delivery/http/controllers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
	"eventplanner/internal/httpserver"
	"eventplanner/internal/repository/postgres"
	"eventplanner/internal/services"

	"golang.org/x/crypto/bcrypt"
)

// Service names accepted by "serve".
const (
	ServiceWeb         = "web"
	ServiceUsers       = domain.StoreUsers
	ServiceEvents      = domain.StoreEvents
	ServiceInvitations = domain.StoreInvitations
	ServiceCalendars   = domain.StoreCalendars
)

const usage = "expected command: serve [web|users|events|invitations|calendars] or migrate [table...]"

// storeTables maps each store to the table it owns.
var storeTables = map[string]string{
	ServiceUsers:       postgres.TableUsers,
	ServiceEvents:      postgres.TableEvents,
	ServiceInvitations: postgres.TableInvitations,
	ServiceCalendars:   postgres.TableCalendarShares,
}

// Run dispatches the command line.
func Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	switch args[0] {
	case "serve":
		service := ServiceWeb
		if len(args) > 1 {
			service = args[1]
		}
		return serve(ctx, service)
	case "migrate":
		return migrate(ctx, args[1:])
	default:
		return fmt.Errorf("unknown command %q: %s", args[0], usage)
	}
}

func serve(ctx context.Context, service string) error {
	if _, ok := storeTables[service]; !ok && service != ServiceWeb {
		return fmt.Errorf("unknown service %q: %s", service, usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger().With("service", service)
	slog.SetDefault(logger)

	var handler http.Handler
	if service == ServiceWeb {
		handler, err = buildWeb(cfg, logger)
		if err != nil {
			return err
		}
	} else {
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db, storeTables[service]); err != nil {
			return err
		}
		handler, err = buildStore(service, db, cfg, logger)
		if err != nil {
			return err
		}
	}

	return httpserver.New(":"+cfg.Port, handler).Run(ctx, logger)
}

func migrate(ctx context.Context, tables []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger()
	if len(tables) == 0 {
		tables = postgres.AllTables
	}

	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, tables...); err != nil {
		return err
	}
	logger.Info("schema up to date", "tables", strings.Join(tables, ","))
	return nil
}

// buildWeb wires the planner against the stores' base URLs.
func buildWeb(cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	httpClient := storeclient.NewHTTPClient(cfg.StoreTimeout)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("mailer: %w", err)
	}

	policies := services.DefaultPolicies()
	policies.Inbox = cfg.InboxPolicy

	planner := services.NewPlanner(services.PlannerDeps{
		Users:       storeclient.NewUserClient(cfg.UsersServiceURL, httpClient),
		Events:      storeclient.NewEventClient(cfg.EventsServiceURL, httpClient),
		Invitations: storeclient.NewInvitationClient(cfg.InvitationsServiceURL, httpClient),
		Calendars:   storeclient.NewCalendarClient(cfg.CalendarsServiceURL, httpClient),
		Email:       services.NewEmailService(mailer, email.NewTemplateRenderer(), logger),
		Logger:      logger,
	}, policies, cfg.Email.RecipientDomain)

	tokens := auth.NewJWT(cfg.JWTSecret)
	ctrl := controllers.NewPlannerController(logger, planner, tokens, cfg.TokenExpiry, cfg.IsProduction())
	common := deliveryhttp.Common{
		Service:            ServiceWeb,
		Logger:             logger,
		Metrics:            middleware.NewMetrics(ServiceWeb),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		SwaggerInstance:    deliveryhttp.SwaggerPlanner,
	}
	return deliveryhttp.NewPlannerRouter(common, ctrl, tokens, middleware.NewRateLimiter(cfg.AuthRateLimit, 0)), nil
}

// buildStore wires one store's repository, service and router on db.
func buildStore(service string, db *sql.DB, cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	common := deliveryhttp.Common{
		Service:            service,
		Logger:             logger,
		Metrics:            middleware.NewMetrics(service),
		DB:                 db,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		SwaggerInstance:    deliveryhttp.SwaggerStores,
	}
	timeout := cfg.ContextTimeout

	switch service {
	case ServiceUsers:
		svc := services.NewUserService(postgres.NewUserRepository(db), auth.NewBcryptHasher(bcrypt.DefaultCost), timeout)
		return deliveryhttp.NewUserRouter(common, controllers.NewUserController(logger, svc)), nil
	case ServiceEvents:
		svc := services.NewEventService(postgres.NewEventRepository(db), timeout)
		return deliveryhttp.NewEventRouter(common, controllers.NewEventController(logger, svc)), nil
	case ServiceInvitations:
		svc := services.NewInvitationService(postgres.NewInvitationRepository(db), timeout)
		return deliveryhttp.NewInvitationRouter(common, controllers.NewInvitationController(logger, svc)), nil
	case ServiceCalendars:
		svc := services.NewCalendarService(postgres.NewCalendarRepository(db), timeout)
		return deliveryhttp.NewCalendarRouter(common, controllers.NewCalendarController(logger, svc)), nil
	default:
		return nil, fmt.Errorf("unknown store %q", service)
	}
}
