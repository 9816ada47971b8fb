package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resumelift/internal/config"
	lifterrors "resumelift/internal/errors"
)

func newTestServer(apiKeys []string) *Server {
	return NewServer(&config.Config{}, ServerConfig{
		Host:           "localhost",
		Port:           "8080",
		Version:        "test",
		APIKeys:        apiKeys,
		MaxRequestSize: 1024,
	}, lifterrors.NewLogger(slog.LevelError))
}

func TestAuthMiddleware(t *testing.T) {
	okHandler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	tests := []struct {
		name       string
		apiKeys    []string
		headers    map[string]string
		wantStatus int
	}{
		{
			name:       "no keys configured allows anonymous",
			apiKeys:    nil,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing key rejected",
			apiKeys:    []string{"secret-key-1234"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid X-API-Key accepted",
			apiKeys:    []string{"secret-key-1234"},
			headers:    map[string]string{"X-API-Key": "secret-key-1234"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid bearer token accepted",
			apiKeys:    []string{"secret-key-1234"},
			headers:    map[string]string{"Authorization": "Bearer secret-key-1234"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid key rejected",
			apiKeys:    []string{"secret-key-1234"},
			headers:    map[string]string{"X-API-Key": "wrong-key"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed authorization header rejected",
			apiKeys:    []string{"secret-key-1234"},
			headers:    map[string]string{"Authorization": "Basic secret-key-1234"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(tt.apiKeys)
			handler := s.authMiddleware(okHandler)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	s := newTestServer(nil)
	handler := s.requestSizeLimitMiddleware(func(w http.ResponseWriter, r *http.Request) {
		var req ParseRequest
		if err := parseJSONRequest(r, &req); err != nil {
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	t.Run("small body passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(`{"resumeText":"hi"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rec.Code)
		}
	})

	t.Run("oversized body rejected", func(t *testing.T) {
		body := `{"resumeText":"` + strings.Repeat("x", 2048) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "exceeds limit") {
			t.Errorf("Expected size limit error, got %q", rec.Body.String())
		}
	})
}

func TestParseJSONRequestContentType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     bool
	}{
		{"json content type", "application/json", `{"resumeText":"hi"}`, false},
		{"json with charset", "application/json; charset=utf-8", `{"resumeText":"hi"}`, false},
		{"missing content type", "", `{"resumeText":"hi"}`, false},
		{"wrong content type", "text/plain", `{"resumeText":"hi"}`, true},
		{"invalid json", "application/json", `{"resumeText":`, true},
		{"unknown field", "application/json", `{"resume":"hi"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			var dst ParseRequest
			err := parseJSONRequest(req, &dst)
			if tt.wantErr && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		byAPIKey bool
		byIP     bool
		headers  map[string]string
		remote   string
		want     string
	}{
		{
			name:     "api key preferred",
			byAPIKey: true,
			byIP:     true,
			headers:  map[string]string{"X-API-Key": "key-1"},
			remote:   "10.0.0.1:1234",
			want:     "api:key-1",
		},
		{
			name:   "falls back to ip",
			byIP:   true,
			remote: "10.0.0.1:1234",
			want:   "ip:10.0.0.1",
		},
		{
			name:    "forwarded for takes first hop",
			byIP:    true,
			headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			remote:  "10.0.0.1:1234",
			want:    "ip:203.0.113.7",
		},
		{
			name:     "bearer token used as api key",
			byAPIKey: true,
			headers:  map[string]string{"Authorization": "Bearer key-2"},
			remote:   "10.0.0.1:1234",
			want:     "api:key-2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/score", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			got := getRateLimitKey(req)
			if got != tt.want {
				t.Errorf("Expected key %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"short", "***"},
		{"12345678", "***"},
		{"secret-key-1234", "secr...1234"},
	}

	for _, tt := range tests {
		if got := maskAPIKey(tt.key); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
