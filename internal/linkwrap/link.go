// Package linkwrap implements the link-wrapping gateway: opaque short
// IDs for sensitive destinations and the two-phase reveal protocol that
// gates them behind bot classification and rate limiting.
package linkwrap

import (
	"errors"
	"regexp"
	"time"
)

// Kind separates links that redirect immediately from links gated
// behind the interstitial.
type Kind string

const (
	KindNormal    Kind = "normal"
	KindSensitive Kind = "sensitive"
)

var (
	// ErrNotFound covers unknown, malformed, and expired short IDs
	// alike. Callers must render a generic not-found page; nothing in
	// the error may reveal whether the ID was almost valid.
	ErrNotFound = errors.New("wrapped link not found")

	// ErrRateLimited means the caller exhausted the reveal quota for
	// the current window. The outward message says "try again", never
	// the blocking rationale.
	ErrRateLimited = errors.New("rate limited")

	// ErrBlocked is returned when the bot gate rejects a reveal. It is
	// surfaced to clients exactly like ErrNotFound so that blocked
	// crawlers cannot distinguish gating from absence.
	ErrBlocked = errors.New("request blocked")

	// ErrInvalidDestination rejects wrap requests whose destination
	// does not survive normalization as an absolute URL.
	ErrInvalidDestination = errors.New("invalid destination url")
)

// WrappedLink is the persisted record behind one short ID. Created once
// at publish time, read-only thereafter except for expiry; end users
// never mutate it.
type WrappedLink struct {
	ShortID        string     `json:"short_id"`
	DestinationURL string     `json:"destination_url"`
	Kind           Kind       `json:"kind"`
	Category       string     `json:"category"`
	Domain         string     `json:"domain"`
	TitleAlias     string     `json:"title_alias,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

// Sensitive reports whether the link must pass through the interstitial
// gate before the destination is revealed.
func (l *WrappedLink) Sensitive() bool {
	return l.Kind == KindSensitive
}

// Expired reports whether the link is past its expiry at now.
// Links without an expiry never expire.
func (l *WrappedLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && !now.Before(*l.ExpiresAt)
}

// shortIDRe bounds the accepted short-ID shape. Anything outside it is
// treated as not found without touching the store.
var shortIDRe = regexp.MustCompile(`^[a-z0-9]{8,64}$`)

// ValidShortID reports whether s has the shape of a minted short ID.
func ValidShortID(s string) bool {
	return shortIDRe.MatchString(s)
}
