package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	authHTTP "github.com/secretaryhq/secretary/internal/auth/http"
	authService "github.com/secretaryhq/secretary/internal/auth/service"
	"github.com/secretaryhq/secretary/internal/config"
	"github.com/secretaryhq/secretary/internal/metrics"
	secretsHTTP "github.com/secretaryhq/secretary/internal/secrets/http"
)

// Server is the public HTTP API server.
type Server struct {
	server *http.Server
	logger *slog.Logger
	ready  atomic.Bool
}

// NewServer creates the API server with all routes wired.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	secretHandler *secretsHTTP.SecretHandler,
	identityService authService.IdentityService,
	metricsProvider *metrics.Provider,
) *Server {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	s := &Server{
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
	s.ready.Store(true)

	router.GET("/health", HealthHandler)
	router.GET("/ready", ReadinessHandler(s.ready.Load))

	identityMiddleware := authHTTP.IdentityMiddleware(identityService, logger)
	requireIdentity := authHTTP.RequireIdentityMiddleware(logger)

	// Reveal and removal take unguessable capabilities from anyone holding
	// them, so their defense is the per-IP rate limit, not authentication.
	guessLimited := func(c *gin.Context) { c.Next() }
	if cfg.RateLimitEnabled {
		guessLimited = authHTTP.RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, logger)
	}

	v1 := router.Group("/v1")
	{
		v1.POST("/secrets", identityMiddleware, secretHandler.CreateHandler)
		v1.GET("/secrets", identityMiddleware, requireIdentity, secretHandler.ListHandler)
		v1.POST("/secrets/:id/reveal", guessLimited, secretHandler.RevealHandler)
		v1.DELETE("/secrets/removal/:removalKey", guessLimited, secretHandler.RemoveHandler)
	}

	return s
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server. Readiness flips first so
// load balancers stop routing new traffic while in-flight requests drain.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	s.ready.Store(false)
	return s.server.Shutdown(ctx)
}
