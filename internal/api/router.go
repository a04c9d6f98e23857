package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/constellation/social-api/docs"
	"github.com/constellation/social-api/internal/api/handler"
	"github.com/constellation/social-api/internal/api/middleware"
	"github.com/constellation/social-api/internal/core/domain"
	"github.com/constellation/social-api/internal/core/ports"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Accounts ports.AccountService
	Sessions ports.SessionService
	Posts    ports.PostService
	Groups   ports.GroupService

	// Readiness lists the dependencies checked by /health/ready.
	Readiness map[string]handler.Pinger

	// Registerer and Gatherer back the HTTP metrics; nil means the
	// Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "social",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Accounts, deps.Sessions)
	userHandler := handler.NewUserHandler(deps.Accounts)
	postHandler := handler.NewPostHandler(deps.Posts)
	groupHandler := handler.NewGroupHandler(deps.Groups)
	authMiddleware := middleware.Auth(deps.Sessions)

	// --- Public routes ---
	public := e.Group("/api")
	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)

	// --- Authenticated routes ---
	private := e.Group("/api", authMiddleware)
	private.POST("/logout", authHandler.Logout)
	private.GET("/me", authHandler.Me)

	private.GET("/users", userHandler.List, middleware.RBAC(domain.ActionListUsers))
	private.POST("/users/:id/assign-role", userHandler.AssignRole, middleware.RBAC(domain.ActionAssignRole))
	private.POST("/users/:id/ban", userHandler.Ban, middleware.RBAC(domain.ActionBan))
	private.POST("/users/:id/unban", userHandler.Unban, middleware.RBAC(domain.ActionUnban))
	private.POST("/users/:id/reward", userHandler.Reward, middleware.RBAC(domain.ActionReward))
	private.GET("/users/:id/moderation-log", userHandler.ModerationLog)

	private.GET("/posts", postHandler.List)
	private.POST("/posts", postHandler.Create, middleware.RBAC(domain.ActionCreatePost))
	private.POST("/posts/:id/like", postHandler.Like)
	private.POST("/posts/:id/comment", postHandler.Comment)

	private.POST("/groups", groupHandler.Create, middleware.RBAC(domain.ActionCreateGroup))
	private.POST("/groups/:id/members", groupHandler.AddMember, middleware.RBAC(domain.ActionAddGroupMember))

	// --- Health probes and tooling (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger routes Echo's access log through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
