package redis

import (
	"context"
	"fmt"
	"time"
)

// IncrWindow atomically increments a rate limit window counter and
// returns the new count. The expiry is armed only when the increment
// created the key, so the window TTL is set exactly once.
func (s *Store) IncrWindow(ctx context.Context, window string, ttl time.Duration) (int64, error) {
	key := RateLimitKey(window)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment window counter: %w", err)
	}

	if count == 1 {
		if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
			return 0, fmt.Errorf("failed to set window expiry: %w", err)
		}
	}

	return count, nil
}
