package resolve

import (
	"net/url"
	"regexp"
	"strings"
)

// trackingParams is the fixed denylist of query parameters stripped during
// normalization. Matching is exact except for the utm_ prefix.
var trackingParams = map[string]struct{}{
	"fbclid": {},
	"gclid":  {},
	"igshid": {},
	"_ga":    {},
	"ref":    {},
	"source": {},
}

var schemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// Normalize canonicalizes a destination URL: prepends https:// when no
// scheme is present, forces https over http, and strips tracking
// parameters. Malformed input is returned unchanged; normalization
// must never fail a caller that holds a user-entered URL.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}

	candidate := trimmed
	if !schemeRe.MatchString(candidate) {
		candidate = "https://" + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil || u.Host == "" {
		return raw
	}

	u.Scheme = "https"
	u.Host = strings.ToLower(u.Host)

	if u.RawQuery != "" {
		vals := u.Query()
		for key := range vals {
			if isTrackingParam(key) {
				vals.Del(key)
			}
		}
		u.RawQuery = vals.Encode()
	}
	u.Fragment = ""

	return u.String()
}

func isTrackingParam(key string) bool {
	key = strings.ToLower(key)
	if strings.HasPrefix(key, "utm_") {
		return true
	}
	_, ok := trackingParams[key]
	return ok
}
