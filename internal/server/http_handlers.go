package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"runtime"
	"time"

	"resumelift/internal/ai"
	"resumelift/internal/config"
)

// HealthResponse is the payload served by the /health endpoint
type HealthResponse struct {
	Status        string                    `json:"status"`
	Version       string                    `json:"version"`
	Timestamp     string                    `json:"timestamp"`
	Models        map[string]*ai.ModelInfo  `json:"models,omitempty"`
	CircuitStatus map[string]map[string]any `json:"circuitBreakers,omitempty"`
	PromptWatcher *PromptWatcherStatus      `json:"promptWatcher,omitempty"`
}

// PromptWatcherStatus reports whether prompt hot-reload is active
type PromptWatcherStatus struct {
	Enabled      bool     `json:"enabled"`
	Running      bool     `json:"running"`
	WatchedFiles []string `json:"watchedFiles,omitempty"`
}

// StatsResponse is the payload served by the /stats endpoint
type StatsResponse struct {
	Version    string `json:"version"`
	GoVersion  string `json:"goVersion"`
	Goroutines int    `json:"goroutines"`
	UptimeSecs int64  `json:"uptimeSeconds"`
	MemoryMB   uint64 `json:"memoryMB"`

	RateLimit map[string]any `json:"rateLimit,omitempty"`
}

var serverStartTime = time.Now()

// healthHandler reports overall service health, including oracle model
// availability and circuit breaker state for each configured operation.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	timeout := s.AppConfig.Observability.HealthCheck.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Version:   s.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	models, circuits, degraded := s.checkOracleHealth(ctx)
	response.Models = models
	response.CircuitStatus = circuits
	if degraded {
		response.Status = "degraded"
	}

	if s.PromptWatcher != nil {
		response.PromptWatcher = &PromptWatcherStatus{
			Enabled:      true,
			Running:      s.PromptWatcher.IsRunning(),
			WatchedFiles: s.PromptWatcher.GetWatchedFiles(),
		}
	} else if s.AppConfig.AI.PromptWatcher.Enabled {
		response.PromptWatcher = &PromptWatcherStatus{Enabled: true, Running: false}
	}

	statusCode := http.StatusOK
	if response.Status == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.Logger.LogError(err, "Failed to encode health response")
	}
}

// checkOracleHealth probes model availability and circuit breaker state
// for the rewrite and suggest operations.
func (s *Server) checkOracleHealth(ctx context.Context) (map[string]*ai.ModelInfo, map[string]map[string]any, bool) {
	operations := map[string]func() config.OperationAIConfig{
		"rewrite": s.AppConfig.GetRewriteConfig,
		"suggest": s.AppConfig.GetSuggestConfig,
	}

	models := make(map[string]*ai.ModelInfo, len(operations))
	circuits := make(map[string]map[string]any, len(operations))
	degraded := false

	modelTimeout := s.AppConfig.Observability.HealthCheck.OracleModelCheckTimeout
	if modelTimeout <= 0 {
		modelTimeout = 5 * time.Second
	}

	for operation, getConfig := range operations {
		opConfig := getConfig()
		service, err := ai.NewService(&opConfig, operation, s.Logger)
		if err != nil {
			models[operation] = &ai.ModelInfo{Available: false, Error: err.Error()}
			degraded = true
			continue
		}

		modelCtx, cancel := context.WithTimeout(ctx, modelTimeout)
		info := service.Provider.GetModelInfo(modelCtx)
		cancel()
		models[operation] = info
		if info == nil || !info.Available {
			degraded = true
		}

		stats := service.Provider.GetCircuitBreakerStats()
		circuits[operation] = stats
		if healthy, ok := stats["overall_healthy"].(bool); ok && !healthy {
			degraded = true
		}
	}

	return models, circuits, degraded
}

// statsHandler reports lightweight runtime statistics
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	response := StatsResponse{
		Version:    s.Version,
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
		UptimeSecs: int64(time.Since(serverStartTime).Seconds()),
		MemoryMB:   memStats.Alloc / 1024 / 1024,
	}
	if s.RateLimiter != nil {
		response.RateLimit = s.RateLimiter.Stats()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.Logger.LogError(err, "Failed to encode stats response")
	}
}

// parseJSONRequest decodes a JSON request body with content-type validation
func parseJSONRequest(r *http.Request, dst any) error {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/json" {
			return fmt.Errorf("unsupported content type %q, expected application/json", contentType)
		}
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body exceeds limit of %d bytes", maxBytesErr.Limit)
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// writeErrorResponse writes a structured JSON error response
func writeErrorResponse(w http.ResponseWriter, errMsg, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := ErrorResponse{
		Error:   errMsg,
		Message: message,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, errMsg, statusCode)
	}
}
