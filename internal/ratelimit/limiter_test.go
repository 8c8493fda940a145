package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/beaconbio/linkgate/internal/logger"
)

type memCounterStore struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func newMemCounterStore() *memCounterStore {
	return &memCounterStore{counts: map[string]int64{}}
}

func (m *memCounterStore) IncrWindow(_ context.Context, key string, _ time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], nil
}

func TestAllowWithinLimit(t *testing.T) {
	store := newMemCounterStore()
	lim := New(store, 3, time.Minute, logger.Nop())

	for i := 0; i < 3; i++ {
		if !lim.Allow(context.Background(), "192.0.2.1", "/link") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if lim.Allow(context.Background(), "192.0.2.1", "/link") {
		t.Error("request over the limit should be denied")
	}
}

func TestDenialIsSticky(t *testing.T) {
	store := newMemCounterStore()
	lim := New(store, 2, time.Minute, logger.Nop())

	lim.Allow(context.Background(), "192.0.2.1", "/link")
	lim.Allow(context.Background(), "192.0.2.1", "/link")

	// Once denied, every later request in the same window is denied too.
	for i := 0; i < 5; i++ {
		if lim.Allow(context.Background(), "192.0.2.1", "/link") {
			t.Fatalf("request %d after denial should stay denied", i+1)
		}
	}
}

func TestIsolationByIPAndEndpoint(t *testing.T) {
	store := newMemCounterStore()
	lim := New(store, 1, time.Minute, logger.Nop())

	if !lim.Allow(context.Background(), "192.0.2.1", "/link") {
		t.Fatal("first request should be allowed")
	}
	if lim.Allow(context.Background(), "192.0.2.1", "/link") {
		t.Error("second request from same ip should be denied")
	}
	if !lim.Allow(context.Background(), "192.0.2.2", "/link") {
		t.Error("different ip should have its own budget")
	}
	if !lim.Allow(context.Background(), "192.0.2.1", "/api/resolve") {
		t.Error("different endpoint should have its own budget")
	}
}

func TestNewWindowResetsBudget(t *testing.T) {
	store := newMemCounterStore()
	lim := New(store, 1, time.Minute, logger.Nop())

	fake := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	lim.now = func() time.Time { return fake }

	lim.Allow(context.Background(), "192.0.2.1", "/link")
	if lim.Allow(context.Background(), "192.0.2.1", "/link") {
		t.Fatal("over-limit request should be denied")
	}

	fake = fake.Add(time.Minute)
	if !lim.Allow(context.Background(), "192.0.2.1", "/link") {
		t.Error("budget should reset in the next window")
	}
}

func TestStoreFailureFailsOpen(t *testing.T) {
	store := newMemCounterStore()
	store.err = errors.New("connection refused")
	lim := New(store, 1, time.Minute, logger.Nop())

	for i := 0; i < 10; i++ {
		if !lim.Allow(context.Background(), "192.0.2.1", "/link") {
			t.Fatal("store failure must not deny requests")
		}
	}
}
