package resolve

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Category classifies a platform for interstitial copy and analytics.
type Category string

const (
	CategorySocial Category = "social"
	CategoryDSP    Category = "dsp" // music streaming (Spotify, Apple Music, ...)
	CategoryCustom Category = "custom"
)

// Platform describes one destination platform: how to recognize its
// domains, pull an identifier out of a canonical URL, and build an
// OS-specific native URI. Platforms without a native app simply return
// false from NativeURI; resolution logic branches on what a capability
// returns, never on whether it exists.
type Platform interface {
	ID() string
	Category() Category

	// Match reports whether host belongs to this platform. Patterns are
	// checked in registration order; the first platform to match wins.
	Match(host string) bool

	// ExtractIdentifier pulls a username or object ID from a normalized
	// URL. ok is false when the URL carries no usable identifier; an
	// empty identifier is never returned with ok=true.
	ExtractIdentifier(u *url.URL) (id string, ok bool)

	// NativeURI builds the OS-specific app URI for an identifier:
	// a custom scheme for iOS, an intent:// wrapper with an embedded
	// browser fallback for Android. ok is false when the platform has
	// no native scheme or os is desktop.
	NativeURI(id string, os OS) (uri string, ok bool)

	// WebFallback returns the URL to use when native resolution is
	// impossible or inappropriate.
	WebFallback(u *url.URL) string

	// SuggestedTitle returns a best-effort human label, e.g.
	// "Instagram (@user)".
	SuggestedTitle(u *url.URL) string

	// Validate checks the canonical path shape. Failures are non-fatal:
	// resolution proceeds with IsValid=false.
	Validate(u *url.URL) bool
}

// descriptor is the single concrete Platform implementation; platforms
// differ only in data and small closures, not in behavior.
type descriptor struct {
	id       string
	name     string // display name for titles
	category Category
	patterns []*regexp.Regexp

	extract func(u *url.URL) string // "" means no identifier
	valid   *regexp.Regexp          // path shape, nil accepts everything

	iosURI     func(id string) string // nil: no iOS scheme
	intentRef  func(id string) string // android host+path (no scheme), nil: no Android intent
	androidPkg string
}

func (d *descriptor) ID() string         { return d.id }
func (d *descriptor) Category() Category { return d.category }

func (d *descriptor) Match(host string) bool {
	host = strings.ToLower(host)
	for _, p := range d.patterns {
		if p.MatchString(host) {
			return true
		}
	}
	return false
}

func (d *descriptor) ExtractIdentifier(u *url.URL) (string, bool) {
	if d.extract == nil || u == nil {
		return "", false
	}
	id := d.extract(u)
	if id == "" {
		return "", false
	}
	return id, true
}

func (d *descriptor) NativeURI(id string, os OS) (string, bool) {
	if id == "" {
		return "", false
	}
	switch os {
	case OSIOS:
		if d.iosURI == nil {
			return "", false
		}
		return d.iosURI(id), true
	case OSAndroid:
		if d.intentRef == nil || d.androidPkg == "" {
			return "", false
		}
		return d.androidIntent(id), true
	default:
		return "", false
	}
}

// androidIntent wraps the target in an intent:// URI with an explicit
// S.browser_fallback_url so the OS itself manages the native/web race.
func (d *descriptor) androidIntent(id string) string {
	ref := d.intentRef(id)
	fallback := url.QueryEscape("https://" + ref)
	return fmt.Sprintf("intent://%s#Intent;package=%s;scheme=https;S.browser_fallback_url=%s;end",
		ref, d.androidPkg, fallback)
}

func (d *descriptor) WebFallback(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}

func (d *descriptor) SuggestedTitle(u *url.URL) string {
	if id, ok := d.ExtractIdentifier(u); ok {
		return fmt.Sprintf("%s (@%s)", d.name, id)
	}
	return d.name
}

func (d *descriptor) Validate(u *url.URL) bool {
	if d.valid == nil || u == nil {
		return u != nil
	}
	return d.valid.MatchString(u.Path)
}

// firstPathSegment returns the first non-empty path segment of u.
func firstPathSegment(u *url.URL) string {
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			return seg
		}
	}
	return ""
}
