package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resumelift/internal/observability"
)

// Start runs the HTTP server until it is shut down
func (s *Server) Start() error {
	om, err := s.initializeObservability()
	if err != nil {
		return err
	}

	if err := s.startPromptWatcher(); err != nil {
		s.shutdownObservability(om)
		return err
	}

	server := s.setupHTTPServer(om)

	s.displayServerInfo()

	return s.startWithGracefulShutdown(server, om)
}

// initializeObservability sets up tracing and metrics
func (s *Server) initializeObservability() (*observability.ObservabilityManager, error) {
	obsConfig := observability.GetObservabilityConfig(s.AppConfig, s.Version)
	om, err := observability.NewObservabilityManager(obsConfig, s.AppConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	return om, nil
}

// startPromptWatcher starts prompt file hot-reloading when enabled
func (s *Server) startPromptWatcher() error {
	if !s.AppConfig.AI.PromptWatcher.Enabled {
		return nil
	}

	watcher, err := NewPromptWatcher(s.AppConfig, s.Logger)
	if err != nil {
		return fmt.Errorf("failed to create prompt watcher: %w", err)
	}
	if watcher == nil {
		s.Logger.Info("Prompt watching enabled but no prompt files configured")
		return nil
	}

	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start prompt watcher: %w", err)
	}
	s.PromptWatcher = watcher
	return nil
}

// setupHTTPServer creates the HTTP server with routes and middleware
func (s *Server) setupHTTPServer(om *observability.ObservabilityManager) *http.Server {
	mux := s.setupRoutes(om)

	return &http.Server{
		Addr:         s.Host + ":" + s.Port,
		Handler:      om.HTTPMiddleware()(mux),
		ReadTimeout:  s.ReadTimeout,
		WriteTimeout: s.WriteTimeout,
		IdleTimeout:  s.IdleTimeout,
	}
}

// startWithGracefulShutdown runs the server and handles shutdown signals
func (s *Server) startWithGracefulShutdown(server *http.Server, om *observability.ObservabilityManager) error {
	serverErrors := make(chan error, 1)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		s.stopBackground(om)
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		s.Logger.Info("Shutdown signal received", "signal", sig.String())
		return s.performGracefulShutdown(server, om)
	}
}

// performGracefulShutdown drains in-flight requests and stops background workers
func (s *Server) performGracefulShutdown(server *http.Server, om *observability.ObservabilityManager) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		s.Logger.LogError(err, "Graceful shutdown failed, forcing close")
		if closeErr := server.Close(); closeErr != nil {
			s.Logger.LogError(closeErr, "Forced close failed")
		}
	}

	s.stopBackground(om)

	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	s.Logger.Info("Server stopped")
	return nil
}

// stopBackground stops the prompt watcher, rate limiter, and observability
func (s *Server) stopBackground(om *observability.ObservabilityManager) {
	if s.PromptWatcher != nil {
		s.PromptWatcher.Stop()
	}
	if s.RateLimiter != nil {
		s.RateLimiter.Close()
	}
	s.shutdownObservability(om)
}

// shutdownObservability flushes exporters with a bounded timeout
func (s *Server) shutdownObservability(om *observability.ObservabilityManager) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := om.Shutdown(ctx); err != nil {
		s.Logger.LogError(err, "Failed to shut down observability cleanly")
	}
}
