package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter_AllowsUpToMaxAttempts(t *testing.T) {
	rl := NewRateLimiterWithConfig(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("attempt over the limit should be denied")
	}

	// A different client has its own window.
	if !rl.allow("10.0.0.2") {
		t.Error("other clients must not share the window")
	}
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	rl := NewRateLimiterWithConfig(1, 10*time.Millisecond)

	if !rl.allow("10.0.0.1") {
		t.Fatal("first attempt should be allowed")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("second attempt inside the window should be denied")
	}

	time.Sleep(20 * time.Millisecond)

	if !rl.allow("10.0.0.1") {
		t.Error("attempt after the window expires should be allowed")
	}
}

func TestRateLimiter_ResetClearsState(t *testing.T) {
	rl := NewRateLimiterWithConfig(1, time.Minute)

	_ = rl.allow("10.0.0.1")
	if rl.allow("10.0.0.1") {
		t.Fatal("second attempt should be denied before reset")
	}

	rl.Reset()

	if !rl.allow("10.0.0.1") {
		t.Error("attempt after reset should be allowed")
	}
}
