// Package server provides the HTTP server for the chat relay.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"lumen-hq/hermes/pkg/config"
	"lumen-hq/hermes/pkg/providers"
	"lumen-hq/hermes/pkg/proxy/handlers"
	"lumen-hq/hermes/pkg/proxy/middleware"
	"lumen-hq/hermes/pkg/ratelimit"
	"lumen-hq/hermes/pkg/telemetry/metrics"
)

// Server is the HTTP server for the chat relay.
type Server struct {
	config       *config.Config
	provider     providers.Provider
	limiter      *ratelimit.FixedWindowLimiter
	collector    *metrics.Collector
	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a new relay server.
func NewServer(cfg *config.Config, provider providers.Provider, limiter *ratelimit.FixedWindowLimiter, collector *metrics.Collector) *Server {
	return &Server{
		config:       cfg,
		provider:     provider,
		limiter:      limiter,
		collector:    collector,
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	handler := s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:           s.config.Server.ListenAddress,
		Handler:        handler,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting relay server",
			"address", s.config.Server.ListenAddress,
			"static_dir", s.config.Server.StaticDir,
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("relay server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	chatHandler := handlers.NewChatHandler(s.provider, s.limiter, s.collector, s.credentialSource())
	healthHandler := handlers.NewHealthHandler()
	staticHandler := handlers.NewStaticHandler(s.config.Server.StaticDir)

	mux.Handle("/api/chat", chatHandler)
	mux.Handle("/api/health", healthHandler)

	if s.config.Telemetry.Metrics.Enabled {
		mux.Handle(s.config.Telemetry.Metrics.Path, s.collector.Handler())
	}

	// Static frontend and uniform 404 for everything else
	mux.Handle("/", staticHandler)

	// Apply middleware chain
	var handler http.Handler = mux

	handler = middleware.TimeoutMiddleware(s.config.Server.WriteTimeout)(handler)

	corsConfig := &middleware.CORSConfig{
		Enabled:        s.config.Server.CORS.Enabled,
		AllowedOrigins: s.config.Server.CORS.AllowedOrigins,
		AllowedMethods: s.config.Server.CORS.AllowedMethods,
		AllowedHeaders: s.config.Server.CORS.AllowedHeaders,
		MaxAge:         s.config.Server.CORS.MaxAge,
	}
	handler = middleware.CORSMiddleware(corsConfig)(handler)

	// RequestID must run before Logging so the access log carries the ID
	handler = middleware.MetricsMiddleware(s.collector)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)

	// Recovery middleware (outermost)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}

// credentialSource returns a function reporting the current backend
// credential, preferring the live global configuration so hot reloads take
// effect without a restart.
func (s *Server) credentialSource() handlers.CredentialSource {
	return func() string {
		if cfg := config.GetConfig(); cfg != nil {
			return cfg.Provider.APIKey
		}
		return s.config.Provider.APIKey
	}
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler.
// Exposed for tests that exercise the full route and middleware stack.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
