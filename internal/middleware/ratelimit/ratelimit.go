// Package ratelimit provides a sliding-window rate limiter keyed by session.
// The conversational enrichment path is the only consumer; core analysis
// requests are never rate limited.
package ratelimit

import (
	"net/http"
	"sync"
	"time"
)

// Limiter tracks request timestamps per session inside a sliding window.
type Limiter struct {
	mu           sync.Mutex
	sessions     map[string][]time.Time
	limit        int
	window       time.Duration
	stopCleanup  chan struct{}
	shutdownOnce sync.Once

	cleanupInterval time.Duration
	now             func() time.Time // overridable in tests
}

// Config holds rate limiter configuration.
type Config struct {
	Limit           int
	Window          time.Duration
	CleanupInterval time.Duration
}

// DefaultConfig allows 5 requests per minute per session.
func DefaultConfig() Config {
	return Config{
		Limit:           5,
		Window:          time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// NewLimiter creates a sliding-window limiter and starts its cleanup loop.
func NewLimiter(config Config) *Limiter {
	if config.Limit <= 0 {
		config = DefaultConfig()
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 5 * time.Minute
	}

	rl := &Limiter{
		sessions:        make(map[string][]time.Time),
		limit:           config.Limit,
		window:          config.Window,
		stopCleanup:     make(chan struct{}),
		cleanupInterval: config.CleanupInterval,
		now:             time.Now,
	}
	go rl.startCleanup()
	return rl
}

// Allow reports whether a request for the session fits in the window.
// Timestamps older than the window expire individually, so capacity frees
// up gradually rather than all at once.
func (rl *Limiter) Allow(session string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)

	recent := rl.sessions[session][:0]
	for _, ts := range rl.sessions[session] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= rl.limit {
		rl.sessions[session] = recent
		return false
	}

	rl.sessions[session] = append(recent, now)
	return true
}

// startCleanup periodically drops sessions with no requests in the window.
func (rl *Limiter) startCleanup() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleSessions()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *Limiter) cleanupStaleSessions() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.window)
	for session, stamps := range rl.sessions {
		stale := true
		for _, ts := range stamps {
			if ts.After(cutoff) {
				stale = false
				break
			}
		}
		if stale {
			delete(rl.sessions, session)
		}
	}
}

// ActiveSessions returns the number of currently tracked sessions.
func (rl *Limiter) ActiveSessions() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.sessions)
}

// Stop shuts down the cleanup goroutine.
func (rl *Limiter) Stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

// Middleware wraps a handler with rate limiting. extractSession derives the
// session key from the request; onLimit renders the rejection (a default
// 429 with Retry-After when nil).
func (rl *Limiter) Middleware(extractSession func(*http.Request) string, onLimit func(http.ResponseWriter, *http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.Allow(extractSession(r)) {
				if onLimit != nil {
					onLimit(w, r)
				} else {
					w.Header().Set("Retry-After", "60")
					http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
