package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/frauddetect/fraud-detection/internal/auth/api/handler"
	"github.com/frauddetect/fraud-detection/internal/auth/api/middleware"
	"github.com/frauddetect/fraud-detection/internal/auth/core/domain"
	"github.com/frauddetect/fraud-detection/internal/auth/core/ports"
)

// Deps carries everything the router needs to wire the endpoint layer.
type Deps struct {
	Auth   ports.AuthService
	Tokens ports.TokenService
	// Readiness lists backends the readiness probe checks, keyed by name.
	Readiness map[string]handler.Pinger
	// Metrics receives the HTTP request metrics; nil means the default
	// registerer.
	Metrics prometheus.Registerer
	Log     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "authsvc",
		Registerer: deps.Metrics,
	}))

	authHandler := handler.NewAuthHandler(deps.Auth, deps.Tokens)
	tokenHandler := handler.NewTokenHandler(deps.Tokens)
	userHandler := handler.NewUserHandler(deps.Auth)

	authenticated := middleware.Authenticate(deps.Tokens)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/login", authHandler.Login)
	e.GET("/verify-token", tokenHandler.Verify)
	e.POST("/verify-token", tokenHandler.Verify)
	e.GET("/users/me", authHandler.Me, authenticated)

	// --- Admin-only user management ---
	e.POST("/users", userHandler.Create, authenticated, adminOnly)
	e.DELETE("/users/:username", userHandler.Delete, authenticated, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
