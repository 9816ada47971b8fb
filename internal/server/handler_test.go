package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resumelift/internal/config"
	lifterrors "resumelift/internal/errors"
	"resumelift/internal/observability"
	"resumelift/internal/types"
)

func testLogger() *lifterrors.Logger {
	return lifterrors.NewLogger(slog.LevelError)
}

func newTestObservability(t *testing.T, cfg *config.Config) *observability.ObservabilityManager {
	t.Helper()
	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, cfg)
	if err != nil {
		t.Fatalf("Failed to create observability manager: %v", err)
	}
	return om
}

func TestOptimizeHandlerWithoutOracleCredentials(t *testing.T) {
	// The Gemini client falls back to these on its own
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	cfg := &config.Config{}
	cfg.Optimize.TargetScore = 80
	cfg.Optimize.MaxRounds = 3

	s := NewServer(cfg, ServerConfig{
		Host:           "localhost",
		Port:           "8080",
		Version:        "test",
		MaxRequestSize: 1 << 20,
	}, testLogger())
	om := newTestObservability(t, cfg)
	handler := s.createOptimizeHandler(om)

	body := `{"resumeText":"Asha Patel\nSUMMARY\nBackend engineer\nSKILLS\nGo","jobDescription":"go docker kubernetes"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/optimize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200 without oracle credentials, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp types.OptimizeResumeOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Outcome != "skipped" {
		t.Errorf("Expected outcome 'skipped', got %q", resp.Outcome)
	}
	if resp.RoundsUsed != 0 {
		t.Errorf("Expected 0 rounds used, got %d", resp.RoundsUsed)
	}
	if resp.Record.Name != "Asha Patel" {
		t.Errorf("Expected baseline record to be returned, got name %q", resp.Record.Name)
	}
	if resp.InitialScore != resp.FinalScore {
		t.Errorf("Expected unchanged score, got initial %d final %d", resp.InitialScore, resp.FinalScore)
	}
}

func TestOptimizeHandlerValidation(t *testing.T) {
	cfg := &config.Config{}
	cfg.Optimize.TargetScore = 80
	cfg.Optimize.MaxRounds = 3

	s := NewServer(cfg, ServerConfig{MaxRequestSize: 1 << 20}, testLogger())
	om := newTestObservability(t, cfg)
	handler := s.createOptimizeHandler(om)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "missing resume text",
			body:       `{"jobDescription":"go"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing job description",
			body:       `{"resumeText":"Asha Patel"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "target score out of range",
			body:       `{"resumeText":"Asha Patel","jobDescription":"go","targetScore":150}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative max rounds",
			body:       `{"resumeText":"Asha Patel","jobDescription":"go","maxRounds":-1}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/optimize", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}
