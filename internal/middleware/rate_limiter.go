package middleware

import (
	"strconv"
	"sync"
	"time"
)

// RateLimiter is a fixed-window in-memory limiter. Bot updates are limited
// per Telegram user, webhook requests per remote IP, both over the same
// window.
type RateLimiter struct {
	limits map[string]*window
	mu     sync.Mutex

	userMax int
	ipMax   int
	period  time.Duration
}

type window struct {
	requests int
	resetAt  time.Time
}

func NewRateLimiter(userMax, ipMax int, period time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limits:  make(map[string]*window),
		userMax: userMax,
		ipMax:   ipMax,
		period:  period,
	}

	go rl.cleanup()

	return rl
}

// AllowUser reports whether the user may send another update this window.
func (rl *RateLimiter) AllowUser(telegramID int64) bool {
	return rl.allow("u:"+strconv.FormatInt(telegramID, 10), rl.userMax)
}

// AllowIP reports whether the remote address may send another request this
// window.
func (rl *RateLimiter) AllowIP(ip string) bool {
	return rl.allow("ip:"+ip, rl.ipMax)
}

func (rl *RateLimiter) allow(key string, max int) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.limits[key]
	if !ok || now.After(w.resetAt) {
		rl.limits[key] = &window{requests: 1, resetAt: now.Add(rl.period)}
		return true
	}

	if w.requests >= max {
		return false
	}
	w.requests++
	return true
}

// Reset clears all windows.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.limits = make(map[string]*window)
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, w := range rl.limits {
			if now.After(w.resetAt) {
				delete(rl.limits, key)
			}
		}
		rl.mu.Unlock()
	}
}
