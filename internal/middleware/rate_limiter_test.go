package middleware

import (
	"testing"
	"time"
)

func TestIPRateLimiterBurst(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Hour, 2, time.Hour)

	if !limiter.Allow("1.2.3.4") {
		t.Fatal("expected first request to pass")
	}
	if !limiter.Allow("1.2.3.4") {
		t.Fatal("expected burst request to pass")
	}
	if limiter.Allow("1.2.3.4") {
		t.Fatal("expected request beyond burst to be denied")
	}
}

func TestIPRateLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Hour, 1, time.Hour)

	if !limiter.Allow("login:1.2.3.4") {
		t.Fatal("expected first key to pass")
	}
	if limiter.Allow("login:1.2.3.4") {
		t.Fatal("expected first key to be exhausted")
	}
	if !limiter.Allow("login:5.6.7.8") {
		t.Fatal("expected a different key to have its own budget")
	}
}

func TestIPRateLimiterExpiresIdleClients(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Hour, 1, time.Minute).(*ipRateLimiter)

	current := time.Now()
	limiter.now = func() time.Time { return current }

	limiter.Allow("1.2.3.4")

	current = current.Add(2 * time.Minute)
	limiter.Allow("9.9.9.9")

	limiter.mu.Lock()
	_, stale := limiter.clients["1.2.3.4"]
	limiter.mu.Unlock()

	if stale {
		t.Fatal("expected idle client entry to be garbage collected")
	}
}
