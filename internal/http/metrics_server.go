package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// MetricsServer exposes the Prometheus registry on the metrics port. It has no
// request middleware, so scrapes are neither logged nor counted.
type MetricsServer struct {
	server *http.Server
	logger *slog.Logger
}

// NewMetricsServer routes GET /metrics on addr to registry. Other methods on
// /metrics get 405 and every other path 404.
func NewMetricsServer(addr string, registry http.Handler, logger *slog.Logger) *MetricsServer {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(registry))

	return &MetricsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger.With(slog.String("listener", "metrics")),
	}
}

// GetHandler returns the router, for tests.
func (s *MetricsServer) GetHandler() http.Handler {
	return s.server.Handler
}

// Start blocks until Shutdown; a closed server is not an error.
func (s *MetricsServer) Start(ctx context.Context) error {
	s.logger.Info("listening", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics listener %s: %w", s.server.Addr, err)
	}
	return nil
}

// Shutdown drains in-flight scrapes until ctx is done.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.logger.Info("draining")
	return s.server.Shutdown(ctx)
}
