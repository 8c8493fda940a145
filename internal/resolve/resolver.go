package resolve

import "net/url"

// Resolution is the outcome of one deep-link resolution. It is a pure
// projection of (url, client context): no I/O, no side effects, safe to
// compute on every click.
//
// Invariants: ShouldTryNative implies NativeURL != ""; FallbackURL is
// always a non-empty absolute URL, defaulting to the (normalized) input
// when no platform matched.
type Resolution struct {
	PlatformID      string   `json:"platformId"`
	Category        Category `json:"category"`
	NormalizedURL   string   `json:"normalizedUrl"`
	NativeURL       string   `json:"nativeUrl,omitempty"`
	FallbackURL     string   `json:"fallbackUrl"`
	ShouldTryNative bool     `json:"shouldTryNative"`
	IsValid         bool     `json:"isValid"`
	Title           string   `json:"title"`
}

// fallbackBlank is the destination of last resort, used only when the
// input is empty or so malformed that no usable URL survives
// normalization. The system must always hand the client somewhere to go.
const fallbackBlank = "about:blank"

// Resolve decides, for one outgoing click, whether to attempt a native
// app deep link or fall back to the web.
func Resolve(rawURL string, cctx ClientContext) Resolution {
	normalized := Normalize(rawURL)

	parsed, err := url.Parse(normalized)
	if err != nil || parsed.Host == "" {
		// Nothing matched and nothing parses: degrade to a direct
		// navigation to whatever the caller gave us.
		fallback := normalized
		if fallback == "" {
			fallback = fallbackBlank
		}
		return Resolution{
			PlatformID:    website.ID(),
			Category:      website.Category(),
			NormalizedURL: normalized,
			FallbackURL:   fallback,
			Title:         website.SuggestedTitle(nil),
		}
	}

	platform := MatchPlatform(parsed.Hostname())

	res := Resolution{
		PlatformID:    platform.ID(),
		Category:      platform.Category(),
		NormalizedURL: normalized,
		IsValid:       platform.Validate(parsed),
		Title:         platform.SuggestedTitle(parsed),
	}

	res.FallbackURL = platform.WebFallback(parsed)
	if res.FallbackURL == "" {
		res.FallbackURL = fallbackBlank
	}

	// Native resolution: mobile only, and only when the platform both
	// yields an identifier and has a scheme for this OS.
	if cctx.OS == OSDesktop {
		return res
	}
	id, ok := platform.ExtractIdentifier(parsed)
	if !ok {
		return res
	}
	if native, ok := platform.NativeURI(id, cctx.OS); ok {
		res.NativeURL = native
		res.ShouldTryNative = true
	}
	return res
}
