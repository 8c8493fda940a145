package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/beaconbio/linkgate/internal/botwall"
)

// MaxBotLogEntries bounds the audit list so classification traffic can
// never grow Redis without limit
const MaxBotLogEntries = 10000

// Append pushes a bot classification entry onto the audit list and
// trims it to the newest MaxBotLogEntries
func (s *Store) Append(ctx context.Context, entry botwall.LogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal bot log entry: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.LPush(ctx, BotLogKey(), data)
	pipe.LTrim(ctx, BotLogKey(), 0, MaxBotLogEntries-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append bot log entry: %w", err)
	}

	return nil
}

// RecentBotLog returns up to limit newest audit entries
func (s *Store) RecentBotLog(ctx context.Context, limit int64) ([]botwall.LogEntry, error) {
	if limit <= 0 || limit > MaxBotLogEntries {
		limit = MaxBotLogEntries
	}

	raws, err := s.client.LRange(ctx, BotLogKey(), 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read bot log: %w", err)
	}

	entries := make([]botwall.LogEntry, 0, len(raws))
	for _, raw := range raws {
		var entry botwall.LogEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			// Skip entries that couldn't be decoded
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
