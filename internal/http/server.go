// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/codecollab/server/internal/config"
	"github.com/codecollab/server/internal/metrics"
	projectHTTP "github.com/codecollab/server/internal/project/http"
	sessionHTTP "github.com/codecollab/server/internal/session/http"
	sessionUseCase "github.com/codecollab/server/internal/session/usecase"
	userHTTP "github.com/codecollab/server/internal/user/http"
)

const readinessTimeout = 2 * time.Second

// Server represents the HTTP server
type Server struct {
	db       *sql.DB
	sessions sessionUseCase.SessionUseCase
	server   *http.Server
	router   *gin.Engine
	logger   *slog.Logger
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine with middleware and every route.
// ctx bounds background work started by middleware such as the rate limiter janitor.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	userHandler *userHTTP.UserHandler,
	projectHandler *projectHTTP.ProjectHandler,
	sessions sessionUseCase.SessionUseCase,
	metricsProvider *metrics.Provider,
) {
	s.sessions = sessions

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(SentryMiddleware())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			metricsProvider.MeterProvider(),
			cfg.MetricsNamespace,
			"/health",
			"/ready",
		))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	authenticated := sessionHTTP.AuthenticationMiddleware(sessions, s.logger)

	credentials := []gin.HandlerFunc{}
	if cfg.RateLimitAuthEnabled {
		credentials = append(credentials, sessionHTTP.CredentialRateLimitMiddleware(
			ctx,
			cfg.RateLimitAuthRequestsPerSec,
			cfg.RateLimitAuthBurst,
			s.logger,
		))
	}

	users := router.Group("/users")
	{
		users.POST("/register", append(credentials, userHandler.RegisterHandler)...)
		users.POST("/login", append(credentials, userHandler.LoginHandler)...)

		users.GET("/profile", authenticated, userHandler.ProfileHandler)
		users.GET("/logout", authenticated, userHandler.LogoutHandler)
		users.GET("/all", authenticated, userHandler.ListHandler)
	}

	projects := router.Group("/projects", authenticated)
	{
		projects.POST("/create", projectHandler.CreateHandler)
		projects.GET("/all", projectHandler.ListHandler)
		projects.PUT("/add-user", projectHandler.AddUsersHandler)
		projects.GET("/get-project/:projectId", projectHandler.GetHandler)
	}

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the database and the revocation store answer.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	components := gin.H{
		"database":         "ok",
		"revocation_store": "ok",
	}
	ready := true

	if s.db == nil || s.db.PingContext(ctx) != nil {
		components["database"] = "error"
		ready = false
	}

	if s.sessions == nil {
		components["revocation_store"] = "error"
		ready = false
	} else if err := s.sessions.Ready(ctx); err != nil {
		s.logger.Warn("revocation store not ready", slog.Any("error", err))
		components["revocation_store"] = "error"
		ready = false
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}
