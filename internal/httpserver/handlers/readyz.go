package handlers

import (
	"net/http"

	"github.com/beaconbio/linkgate/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Redis string `json:"redis"`
}

// Readyz reports readiness. Redis being down degrades the service
// (reveals fail closed) but the process can still serve interstitials,
// so the endpoint stays 200 and surfaces the Redis state in the body.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		redisState := "ok"
		if d.RedisClient == nil {
			redisState = "not configured"
		} else if err := d.RedisClient.Ping(r.Context()).Err(); err != nil {
			redisState = "unreachable"
		}

		writeJSON(w, http.StatusOK, readyzResponse{
			Ready: true,
			Redis: redisState,
		})
	}
}
