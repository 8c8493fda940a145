package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/beaconbio/linkgate/internal/httpserver/deps"
)

// Redirect serves the fast path for non-sensitive links: a plain
// server-side 302 to the destination. Sensitive links never get a
// server-side redirect; they bounce to the interstitial instead so the
// reveal protocol always runs for them.
func Redirect(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shortID := chi.URLParam(r, "shortId")

		link, err := d.Links.Get(r.Context(), shortID)
		if err != nil {
			writeNotFound(w)
			return
		}

		if link.Sensitive() {
			http.Redirect(w, r, "/out/"+link.ShortID, http.StatusFound)
			return
		}

		d.Catalog.RecordReveal(link.Category)
		http.Redirect(w, r, link.DestinationURL, http.StatusFound)
	}
}
