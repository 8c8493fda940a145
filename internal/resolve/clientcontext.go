package resolve

import "strings"

// OS is the coarse operating-system class of the clicking client.
type OS string

const (
	OSIOS     OS = "ios"
	OSAndroid OS = "android"
	OSDesktop OS = "desktop"
)

// ClientContext is derived per request from the user-agent string.
// Native URI schemes are mobile-only; anything that is not clearly a
// mobile OS is treated as desktop.
type ClientContext struct {
	OS OS
}

// ParseClientContext classifies a user agent into a ClientContext.
// Unparseable or empty agents degrade to desktop, which always takes
// the web fallback path.
func ParseClientContext(userAgent string) ClientContext {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"), strings.Contains(ua, "ipod"):
		return ClientContext{OS: OSIOS}
	case strings.Contains(ua, "android"):
		return ClientContext{OS: OSAndroid}
	default:
		return ClientContext{OS: OSDesktop}
	}
}

// ParseOS converts a literal os value ("ios", "android", "desktop")
// into an OS, defaulting to desktop for anything unknown.
func ParseOS(s string) OS {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ios":
		return OSIOS
	case "android":
		return OSAndroid
	default:
		return OSDesktop
	}
}
