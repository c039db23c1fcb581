package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/rentalinx/backoffice/docs"
	"github.com/rentalinx/backoffice/internal/api/handler"
	"github.com/rentalinx/backoffice/internal/api/middleware"
	"github.com/rentalinx/backoffice/internal/core/domain"
	"github.com/rentalinx/backoffice/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth     ports.AuthSessionFactory
	Tokens   TokenService
	Accounts ports.AccountService
	// Checks are pinged by the readiness probe, keyed by dependency name.
	Checks map[string]ports.Pinger
	Log    zerolog.Logger
}

// TokenService issues bearer tokens and resolves them back to a browser context.
type TokenService interface {
	handler.TokenIssuer
	middleware.ContextResolver
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("backoffice"))

	// --- Operational endpoints (no session) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	session := middleware.Session(deps.Auth, deps.Tokens)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Tokens)
	auth := e.Group("/auth", session)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.GET("/session", authHandler.Session)

	// --- Protected routes ---
	v1 := e.Group("/v1", session)

	navHandler := handler.NewNavigationHandler()
	v1.GET("/navigation", navHandler.Navigation, middleware.RequirePermission(""))
	v1.GET("/screens/:screen", navHandler.Screen, middleware.RequireScreen("screen"))

	accountHandler := handler.NewAccountHandler(deps.Accounts)
	users := v1.Group("/users", middleware.RequirePermission(domain.PermUsers))
	users.GET("", accountHandler.List)
	users.POST("", accountHandler.Create)
	users.GET("/:id", accountHandler.Get)
	users.PATCH("/:id", accountHandler.Update)
	users.DELETE("/:id", accountHandler.Delete)
	users.POST("/:id/toggle-status", accountHandler.ToggleStatus)

	return e
}
