package middleware

import (
	"testing"
	"time"
)

func TestAllowUserWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, 10, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.AllowUser(100) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.AllowUser(100) {
		t.Error("request over the limit should be blocked")
	}
}

func TestUsersLimitedIndependently(t *testing.T) {
	rl := NewRateLimiter(1, 10, time.Minute)

	if !rl.AllowUser(1) {
		t.Fatal("first user should be allowed")
	}
	if !rl.AllowUser(2) {
		t.Error("second user must not share the first user's window")
	}
}

func TestUserAndIPNamespacesSeparate(t *testing.T) {
	rl := NewRateLimiter(1, 1, time.Minute)

	if !rl.AllowUser(7) {
		t.Fatal("user should be allowed")
	}
	// An IP that textually collides with the user key must still get its
	// own window.
	if !rl.AllowIP("7") {
		t.Error("ip limit must not share the user's window")
	}
}

func TestWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 1, 10*time.Millisecond)

	if !rl.AllowUser(5) {
		t.Fatal("first request should be allowed")
	}
	if rl.AllowUser(5) {
		t.Fatal("second request should be blocked")
	}

	time.Sleep(20 * time.Millisecond)
	if !rl.AllowUser(5) {
		t.Error("request after window expiry should be allowed")
	}
}

func TestReset(t *testing.T) {
	rl := NewRateLimiter(1, 1, time.Minute)

	rl.AllowUser(9)
	if rl.AllowUser(9) {
		t.Fatal("second request should be blocked")
	}

	rl.Reset()
	if !rl.AllowUser(9) {
		t.Error("request after reset should be allowed")
	}
}
