package server

import (
	"net/http"
	"strings"

	"resumelift/internal/observability"
)

// setupRoutes configures all HTTP routes with their middleware chains
func (s *Server) setupRoutes(om *observability.ObservabilityManager) *http.ServeMux {
	mux := http.NewServeMux()

	// Public endpoints
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/stats", s.statsHandler)

	// API endpoints behind rate limiting, authentication, and size limits
	rateLimit := s.createRateLimitMiddleware(om)
	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return rateLimit(s.authMiddleware(s.requestSizeLimitMiddleware(h)))
	}

	mux.HandleFunc("/api/v1/parse", protected(s.createParseHandler(om)))
	mux.HandleFunc("/api/v1/score", protected(s.createScoreHandler(om)))
	mux.HandleFunc("/api/v1/optimize", protected(s.createOptimizeHandler(om)))
	mux.HandleFunc("/api/v1/suggest", protected(s.createSuggestHandler(om)))

	return mux
}

// authMiddleware validates API keys when authentication is configured.
// Keys are accepted via the X-API-Key header or a Bearer token.
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// No API keys configured means authentication is disabled
		if len(s.APIKeys) == 0 {
			next(w, r)
			return
		}

		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			authHeader := r.Header.Get("Authorization")
			if after, found := strings.CutPrefix(authHeader, "Bearer "); found {
				apiKey = after
			}
		}

		if apiKey == "" {
			s.Logger.Warn("API request without authentication",
				"remote_addr", r.RemoteAddr,
				"path", r.URL.Path)
			writeErrorResponse(w, "Authentication required", "Provide an API key via X-API-Key header or Bearer token", http.StatusUnauthorized)
			return
		}

		if !s.APIKeys[apiKey] {
			s.Logger.Warn("API request with invalid key",
				"remote_addr", r.RemoteAddr,
				"path", r.URL.Path,
				"api_key", maskAPIKey(apiKey))
			writeErrorResponse(w, "Invalid API key", "The provided API key is not valid", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

// requestSizeLimitMiddleware caps request body size
func (s *Server) requestSizeLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.MaxRequestSize > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, s.MaxRequestSize)
		}
		next(w, r)
	}
}

// maskAPIKey masks an API key for safe logging
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
