package linkwrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beaconbio/linkgate/internal/botwall"
	"github.com/beaconbio/linkgate/internal/logger"
)

type fakeStore struct {
	links   map[string]*WrappedLink
	getErr  error
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{links: map[string]*WrappedLink{}}
}

func (f *fakeStore) SaveLink(_ context.Context, link *WrappedLink) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.links[link.ShortID] = link
	return nil
}

func (f *fakeStore) GetLink(_ context.Context, shortID string) (*WrappedLink, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.links[shortID], nil
}

func (f *fakeStore) DeleteLink(_ context.Context, shortID string) error {
	delete(f.links, shortID)
	return nil
}

type fakeLimiter struct {
	allow bool
	calls int
}

func (f *fakeLimiter) Allow(context.Context, string, string) bool {
	f.calls++
	return f.allow
}

type fakeAudit struct {
	entries []botwall.LogEntry
}

func (f *fakeAudit) Append(_ context.Context, e botwall.LogEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

const humanUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"

func newTestService(store LinkStore, limiter Limiter, audit AuditSink) *Service {
	classifier := botwall.New(SensitiveEndpoints)
	return NewService(store, classifier, limiter, audit, logger.Nop())
}

func TestWrapDefaultsFromPlatform(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeLimiter{allow: true}, nil)

	link, err := svc.Wrap(context.Background(), WrapRequest{
		DestinationURL: "instagram.com/some.user?utm_source=bio",
	})
	require.NoError(t, err)

	assert.True(t, ValidShortID(link.ShortID))
	assert.Equal(t, "https://instagram.com/some.user", link.DestinationURL)
	assert.Equal(t, KindNormal, link.Kind)
	assert.Equal(t, "social", link.Category)
	assert.Equal(t, "instagram.com", link.Domain)
	assert.Equal(t, "Instagram (@some.user)", link.TitleAlias)
	assert.Nil(t, link.ExpiresAt)
	assert.Contains(t, store.links, link.ShortID)
}

func TestWrapRejectsInvalidDestination(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeLimiter{allow: true}, nil)

	for _, dest := range []string{"", "   ", "%%%", "http://"} {
		_, err := svc.Wrap(context.Background(), WrapRequest{DestinationURL: dest})
		assert.ErrorIs(t, err, ErrInvalidDestination, "dest=%q", dest)
	}
}

func TestWrapAppliesTTL(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeLimiter{allow: true}, nil)
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	link, err := svc.Wrap(context.Background(), WrapRequest{
		DestinationURL: "https://example.com/page",
		Kind:           KindSensitive,
		Category:       "adult",
		TTL:            24 * time.Hour,
	})
	require.NoError(t, err)
	require.NotNil(t, link.ExpiresAt)
	assert.Equal(t, link.CreatedAt.Add(24*time.Hour), *link.ExpiresAt)
	assert.Equal(t, "adult", link.Category)
}

func TestGetFailsClosed(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeLimiter{allow: true}, nil)

	// Malformed short IDs never reach the store.
	_, err := svc.Get(context.Background(), "../../etc/passwd")
	assert.ErrorIs(t, err, ErrNotFound)

	// Unknown IDs are not found.
	_, err = svc.Get(context.Background(), MintShortID())
	assert.ErrorIs(t, err, ErrNotFound)

	// Store failures collapse to not found: a missing link can never
	// default to "assume allowed".
	store.getErr = errors.New("connection refused")
	_, err = svc.Get(context.Background(), MintShortID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetExpiredLooksLikeNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeLimiter{allow: true}, nil)

	past := time.Now().Add(-time.Minute)
	id := MintShortID()
	store.links[id] = &WrappedLink{
		ShortID:        id,
		DestinationURL: "https://example.com",
		Kind:           KindSensitive,
		ExpiresAt:      &past,
	}

	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func seedSensitive(store *fakeStore) string {
	id := MintShortID()
	store.links[id] = &WrappedLink{
		ShortID:        id,
		DestinationURL: "https://members.example.com/profile",
		Kind:           KindSensitive,
		Category:       "adult",
		CreatedAt:      time.Now(),
	}
	return id
}

func TestRevealHappyPath(t *testing.T) {
	store := newFakeStore()
	limiter := &fakeLimiter{allow: true}
	svc := newTestService(store, limiter, nil)
	id := seedSensitive(store)

	link, err := svc.Reveal(context.Background(), id, RequestMeta{
		IP:        "192.0.2.10",
		UserAgent: humanUA,
		Verified:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://members.example.com/profile", link.DestinationURL)
	assert.Equal(t, 1, limiter.calls)
}

func TestRevealBlocksMetaCrawler(t *testing.T) {
	store := newFakeStore()
	limiter := &fakeLimiter{allow: true}
	audit := &fakeAudit{}
	svc := newTestService(store, limiter, audit)
	id := seedSensitive(store)

	_, err := svc.Reveal(context.Background(), id, RequestMeta{
		IP:        "157.240.1.1",
		UserAgent: "facebookexternalhit/1.1",
	})
	assert.ErrorIs(t, err, ErrBlocked)

	// Blocked before the limiter runs; audit captured the block.
	assert.Equal(t, 0, limiter.calls)
	require.Len(t, audit.entries, 1)
	assert.NotEmpty(t, audit.entries[0].BlockedReason)
	assert.Equal(t, EndpointReveal, audit.entries[0].Endpoint)
}

func TestRevealNonMetaCrawlerPasses(t *testing.T) {
	store := newFakeStore()
	audit := &fakeAudit{}
	svc := newTestService(store, &fakeLimiter{allow: true}, audit)
	id := seedSensitive(store)

	link, err := svc.Reveal(context.Background(), id, RequestMeta{
		IP:        "66.249.66.1",
		UserAgent: "Mozilla/5.0 (compatible; Googlebot/2.1)",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, link.DestinationURL)

	// Classified for observability, never blocked.
	require.Len(t, audit.entries, 1)
	assert.Empty(t, audit.entries[0].BlockedReason)
}

func TestRevealRateLimited(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeLimiter{allow: false}, nil)
	id := seedSensitive(store)

	_, err := svc.Reveal(context.Background(), id, RequestMeta{
		IP:        "192.0.2.10",
		UserAgent: humanUA,
	})
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestRevealUnknownIDBeatsGating(t *testing.T) {
	store := newFakeStore()
	limiter := &fakeLimiter{allow: true}
	svc := newTestService(store, limiter, nil)

	_, err := svc.Reveal(context.Background(), "doesnotexist00000000000000000000", RequestMeta{
		IP:        "192.0.2.10",
		UserAgent: humanUA,
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, limiter.calls)
}

func TestMintShortIDShape(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := MintShortID()
		assert.Len(t, id, 32)
		assert.True(t, ValidShortID(id), "id=%s", id)
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate short id: %s", id)
		}
		seen[id] = struct{}{}
	}
}
