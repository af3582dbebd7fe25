package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/helpdesk-labs/ticketera/internal/auth"
	"github.com/helpdesk-labs/ticketera/internal/observability"
	"github.com/helpdesk-labs/ticketera/internal/repository"
	"github.com/helpdesk-labs/ticketera/internal/service"
	"github.com/helpdesk-labs/ticketera/internal/session"
	"github.com/helpdesk-labs/ticketera/internal/web/handlers"
)

// Dependencies bundles everything the web app needs.
type Dependencies struct {
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	Sessions       *session.Manager
	Users          repository.UserRepository
	Tickets        *service.TicketService
	Auth           *service.AuthService
	Health         *handlers.HealthHandler
	RequestTimeout time.Duration
}

// New assembles the fiber app: views, middlewares and routes.
func New(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:                 NewViewEngine(),
		ViewsLayout:           "layout",
		DisableStartupMessage: true,
	})

	RegisterMiddlewares(app, deps.Logger, deps.Metrics, deps.Sessions, deps.RequestTimeout)

	RegisterRoutes(app, RouteConfig{
		Tickets:        handlers.NewTicketsHandler(deps.Tickets, deps.Sessions),
		Auth:           handlers.NewAuthHandler(deps.Auth, deps.Sessions),
		Health:         deps.Health,
		AuthMiddleware: auth.NewMiddleware(deps.Sessions, deps.Users),
	})

	return app
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Tickets        *handlers.TicketsHandler
	Auth           *handlers.AuthHandler
	Health         *handlers.HealthHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/", cfg.AuthMiddleware.LoadUser, cfg.Tickets.List)

	app.Get("/login", cfg.AuthMiddleware.LoadUser, cfg.Auth.LoginForm)
	app.Post("/login", cfg.Auth.Login)
	app.Get("/logout", cfg.AuthMiddleware.RequireLogin, cfg.Auth.Logout)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.RequireLogin)
	tickets.Get("/nuevo", cfg.Tickets.NewForm)
	tickets.Post("/nuevo", cfg.Tickets.Create)
	tickets.Post("/:id/cerrar", cfg.Tickets.Close)
	tickets.Post("/:id/eliminar", cfg.Tickets.Delete)
}
