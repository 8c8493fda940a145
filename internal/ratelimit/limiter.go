// Package ratelimit implements a fixed-window per-IP request limiter
// backed by an atomic counter store. Within one window a client's
// observed count only grows, so a request denied at count N can never
// be followed by an allowed request at count N+1 in the same window.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/beaconbio/linkgate/internal/logger"
)

// CounterStore increments the counter behind key and returns the new
// value. The first increment of a key must also arm its expiry so
// abandoned windows clean themselves up.
type CounterStore interface {
	IncrWindow(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Limiter allows up to Limit requests per IP and endpoint within each
// Window. The window is aligned to wall-clock boundaries so every
// instance sharing the store agrees on which window a request lands in.
type Limiter struct {
	store  CounterStore
	limit  int64
	window time.Duration
	logger logger.Logger
	now    func() time.Time
}

func New(store CounterStore, limit int, window time.Duration, log logger.Logger) *Limiter {
	return &Limiter{
		store:  store,
		limit:  int64(limit),
		window: window,
		logger: log,
		now:    time.Now,
	}
}

// Allow reports whether the request identified by ip and endpoint fits
// inside the current window. Store failures fail open: throttling is a
// protection layer, not an availability dependency, and an unreachable
// counter must not take link reveals down with it.
func (l *Limiter) Allow(ctx context.Context, ip, endpoint string) bool {
	key := l.windowKey(ip, endpoint)

	// TTL of two windows keeps the counter alive through clock skew at
	// the window boundary while still expiring abandoned keys.
	count, err := l.store.IncrWindow(ctx, key, 2*l.window)
	if err != nil {
		l.logger.Warn("rate limit counter unavailable, allowing request",
			logger.String("endpoint", endpoint),
			logger.Error(err))
		return true
	}

	return count <= l.limit
}

func (l *Limiter) windowKey(ip, endpoint string) string {
	windowStart := l.now().Truncate(l.window).Unix()
	return fmt.Sprintf("%s:%s:%d", endpoint, ip, windowStart)
}
