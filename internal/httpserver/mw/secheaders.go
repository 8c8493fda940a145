package mw

import "net/http"

// NoIndex marks responses as uncacheable and invisible to crawlers.
// Wrapper pages and reveal responses must never end up in a search
// index or a shared cache, and the referrer must not leak the wrapper
// URL to the destination.
func NoIndex(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Cache-Control", "no-store")
		h.Set("X-Robots-Tag", "noindex, nofollow, nosnippet, noarchive")
		h.Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}
