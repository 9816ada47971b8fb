package server

import (
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(60, time.Minute, 2, testLogger())
	defer rl.Close()

	t.Run("burst then deny", func(t *testing.T) {
		key := "ip:203.0.113.7"
		if !rl.Allow(key) {
			t.Fatal("first request should pass")
		}
		if !rl.Allow(key) {
			t.Fatal("second request within burst should pass")
		}
		if rl.Allow(key) {
			t.Error("request beyond burst capacity should be denied")
		}
	})

	t.Run("keys are isolated", func(t *testing.T) {
		exhausted := "api:key-a"
		rl.Allow(exhausted)
		rl.Allow(exhausted)
		rl.Allow(exhausted)

		if !rl.Allow("api:key-b") {
			t.Error("a fresh key should not be affected by another key's usage")
		}
	})
}

func TestRateLimiterStats(t *testing.T) {
	rl := NewRateLimiter(120, time.Minute, 5, testLogger())
	defer rl.Close()

	rl.Allow("ip:198.51.100.1")
	rl.Allow("ip:198.51.100.2")

	stats := rl.Stats()
	if got := stats["activeCallers"]; got != 2 {
		t.Errorf("activeCallers = %v, want 2", got)
	}
	if got := stats["burstCapacity"]; got != 5 {
		t.Errorf("burstCapacity = %v, want 5", got)
	}
	if got := stats["requestsPerSecond"]; got != 2.0 {
		t.Errorf("requestsPerSecond = %v, want 2", got)
	}
}

func TestRateLimiterDefaultWindow(t *testing.T) {
	rl := NewRateLimiter(60, 0, 1, testLogger())
	defer rl.Close()

	if got := rl.Stats()["requestsPerSecond"]; got != 1.0 {
		t.Errorf("requestsPerSecond with zero window = %v, want 1", got)
	}
}
