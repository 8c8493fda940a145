package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/beaconbio/linkgate/internal/linkwrap"
)

// Store handles Redis persistence for wrapped links, rate limit
// counters and the bot audit log
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveLink stores a wrapped link. Links with an expiry get a matching
// key TTL so Redis drops them on its own; the GC sweep only has to
// clean up the membership set.
func (s *Store) SaveLink(ctx context.Context, link *linkwrap.WrappedLink) error {
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("failed to marshal link: %w", err)
	}

	ttl := time.Duration(0)
	if link.ExpiresAt != nil {
		ttl = time.Until(*link.ExpiresAt)
		if ttl <= 0 {
			return fmt.Errorf("link %s is already expired", link.ShortID)
		}
	}

	if err := s.client.Set(ctx, LinkKey(link.ShortID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save link: %w", err)
	}

	if err := s.client.SAdd(ctx, AllLinksKey(), link.ShortID).Err(); err != nil {
		return fmt.Errorf("failed to add link to set: %w", err)
	}

	return nil
}

// GetLink retrieves a wrapped link by short ID. A missing key returns
// (nil, nil); errors are reserved for store failures.
func (s *Store) GetLink(ctx context.Context, shortID string) (*linkwrap.WrappedLink, error) {
	data, err := s.client.Get(ctx, LinkKey(shortID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	var link linkwrap.WrappedLink
	if err := json.Unmarshal(data, &link); err != nil {
		return nil, fmt.Errorf("failed to unmarshal link: %w", err)
	}

	return &link, nil
}

// DeleteLink removes a wrapped link and its set membership
func (s *Store) DeleteLink(ctx context.Context, shortID string) error {
	if err := s.client.Del(ctx, LinkKey(shortID)).Err(); err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}

	if err := s.client.SRem(ctx, AllLinksKey(), shortID).Err(); err != nil {
		return fmt.Errorf("failed to remove link from set: %w", err)
	}

	return nil
}

// AllShortIDs returns every short ID present in the membership set,
// including IDs whose link key has already expired
func (s *Store) AllShortIDs(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, AllLinksKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get short IDs: %w", err)
	}
	return ids, nil
}

// SweepExpired removes set members whose link key no longer exists and
// returns how many were removed
func (s *Store) SweepExpired(ctx context.Context) (int, error) {
	ids, err := s.AllShortIDs(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, id := range ids {
		exists, err := s.client.Exists(ctx, LinkKey(id)).Result()
		if err != nil {
			continue
		}
		if exists == 0 {
			if err := s.client.SRem(ctx, AllLinksKey(), id).Err(); err == nil {
				removed++
			}
		}
	}

	return removed, nil
}
