package handlers

import (
	"net/http"
	"strings"

	"github.com/beaconbio/linkgate/internal/httpserver/deps"
	"github.com/beaconbio/linkgate/internal/resolve"
)

// Resolve computes the deep-link resolution for an arbitrary URL. The
// client OS is taken from the os query parameter when present, else
// from the User-Agent.
func Resolve(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.URL.Query().Get("url"))
		if raw == "" {
			writeBadRequest(w, "missing url parameter")
			return
		}

		cctx := resolve.ParseClientContext(r.UserAgent())
		if osParam := r.URL.Query().Get("os"); osParam != "" {
			cctx.OS = resolve.ParseOS(osParam)
		}

		res := resolve.Resolve(raw, cctx)
		writeJSON(w, http.StatusOK, res)
	}
}
