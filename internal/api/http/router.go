package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/nutrisense/internal/api/http/handlers"
	"github.com/spec-kit/nutrisense/internal/auth"
	"github.com/spec-kit/nutrisense/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Prediction *handlers.PredictionHandler
	Wellness   *handlers.WellnessHandler
	Gate       *auth.Gate
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.Gate.Handle, cfg.Auth.Me)
	authGroup.Post("/logout", cfg.Gate.Handle, cfg.Auth.Logout)

	api := app.Group("/api", cfg.Gate.Handle)
	api.Post("/predict", cfg.Prediction.Predict)
	api.Get("/history", cfg.Prediction.History)
	api.Post("/wellness", cfg.Wellness.Submit)
	api.Get("/wellness/history", cfg.Wellness.History)
}

// ServerConfig describes the HTTP server shell around the routes.
type ServerConfig struct {
	AppName        string
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	RequestTimeout time.Duration
	// browser origins allowed to call the API; empty or "*" allows any
	CORSAllowedOrigins []string
}

// NewServer builds a Fiber app with global middlewares and all routes registered.
func NewServer(server ServerConfig, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               server.AppName,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, server)
	RegisterRoutes(app, routes)
	return app
}
