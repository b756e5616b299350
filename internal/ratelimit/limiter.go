package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// SessionLimiter throttles search traffic per session, lazily creating one
// token bucket per session id.
type SessionLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func NewSessionLimiter(rps float64, burst int) *SessionLimiter {
	return &SessionLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (l *SessionLimiter) get(sessionID string) *rate.Limiter {
	l.mu.RLock()
	limiter, ok := l.limiters[sessionID]
	l.mu.RUnlock()
	if ok {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, ok = l.limiters[sessionID]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(l.rps, l.burst)
	l.limiters[sessionID] = limiter
	return limiter
}

func (l *SessionLimiter) Wait(ctx context.Context, sessionID string) error {
	return l.get(sessionID).Wait(ctx)
}

// Forget drops a session's bucket once the session is closed.
func (l *SessionLimiter) Forget(sessionID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.limiters, sessionID)
}
