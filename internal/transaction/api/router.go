package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/frauddetect/fraud-detection/internal/transaction/api/handler"
	"github.com/frauddetect/fraud-detection/internal/transaction/api/middleware"
	"github.com/frauddetect/fraud-detection/internal/transaction/core/domain"
	"github.com/frauddetect/fraud-detection/internal/transaction/core/ports"
)

// Deps carries everything the router needs to wire the endpoint layer.
type Deps struct {
	Service  ports.TransactionService
	Verifier ports.TokenVerifier
	// Readiness lists dependencies the readiness probe checks, keyed by name.
	Readiness map[string]handler.Pinger
	// Metrics receives the HTTP request metrics; nil means the default
	// registerer.
	Metrics prometheus.Registerer
	Log     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Mutation endpoints require {admin, agent}; reads any authenticated role.
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
		Subsystem:  "fraudtx",
		Registerer: deps.Metrics,
	}))

	txHandler := handler.NewTransactionHandler(deps.Service)
	resultHandler := handler.NewResultHandler(deps.Service)

	authenticated := middleware.Auth(deps.Verifier)
	canMutate := middleware.RBAC(domain.RoleAdmin, domain.RoleAgent)

	// --- Transaction routes ---
	g := e.Group("/transactions", authenticated)
	g.POST("", txHandler.Create, canMutate)
	g.GET("", txHandler.List)
	g.GET("/:id", txHandler.Get)
	g.PUT("/:id", txHandler.UpdateStatus, canMutate)
	g.POST("/:id/results", resultHandler.Record, canMutate)
	g.GET("/:id/results", resultHandler.List)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
