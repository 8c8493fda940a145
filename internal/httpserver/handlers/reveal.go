package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/beaconbio/linkgate/internal/httpserver/deps"
	"github.com/beaconbio/linkgate/internal/linkwrap"
	"github.com/beaconbio/linkgate/internal/utils"
)

// revealRequest is the body the interstitial script sends. Timestamp
// is the client's clock at click time; it is informational only and
// carries no trust, so nothing downstream reads it.
type revealRequest struct {
	Verified  bool  `json:"verified"`
	Timestamp int64 `json:"timestamp"`
}

type revealResponse struct {
	URL string `json:"url"`
}

// Reveal is the second phase of the reveal protocol: it returns the
// destination URL as JSON so the client can navigate itself. Blocked
// requests are indistinguishable from unknown links.
func Reveal(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shortID := chi.URLParam(r, "shortId")

		// A missing or malformed body just means unverified; the gate
		// itself never depends on the client being well-behaved.
		var body revealRequest
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}

		link, err := d.Links.Reveal(r.Context(), shortID, linkwrap.RequestMeta{
			IP:        utils.ClientIP(r, d.TrustProxy),
			UserAgent: r.UserAgent(),
			Verified:  body.Verified,
		})
		if err != nil {
			switch {
			case errors.Is(err, linkwrap.ErrRateLimited):
				writeTooManyRequests(w)
			case errors.Is(err, linkwrap.ErrNotFound), errors.Is(err, linkwrap.ErrBlocked):
				writeNotFound(w)
			default:
				writeInternalError(w)
			}
			return
		}

		d.Catalog.RecordReveal(link.Category)

		writeJSON(w, http.StatusOK, revealResponse{URL: link.DestinationURL})
	}
}
