package ai

import (
	"testing"
	"time"

	"resumelift/internal/config"
)

func TestModelCheckTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout *time.Duration
		want    time.Duration
	}{
		{
			name:    "uses configured timeout",
			timeout: durationPtr(30 * time.Second),
			want:    30 * time.Second,
		},
		{
			name:    "nil timeout falls back to default",
			timeout: nil,
			want:    10 * time.Second,
		},
		{
			name:    "zero timeout falls back to default",
			timeout: durationPtr(0),
			want:    10 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &GeminiProvider{config: &config.OperationAIConfig{Timeout: tt.timeout}}
			if got := g.modelCheckTimeout(); got != tt.want {
				t.Errorf("modelCheckTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func durationPtr(d time.Duration) *time.Duration {
	return &d
}
