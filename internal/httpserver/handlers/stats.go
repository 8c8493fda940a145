package handlers

import (
	"net/http"
	"strconv"

	"github.com/beaconbio/linkgate/internal/botwall"
	"github.com/beaconbio/linkgate/internal/httpserver/deps"
	"github.com/beaconbio/linkgate/internal/logger"
)

type statsResponse struct {
	RevealsByCategory map[string]int64   `json:"reveals_by_category"`
	CatalogSize       int                `json:"catalog_size"`
	CatalogReloadedAt string             `json:"catalog_reloaded_at"`
	RecentBotLog      []botwall.LogEntry `json:"recent_bot_log,omitempty"`
}

// Stats exposes reveal counters and the recent bot audit log for
// operators. Admin-gated.
func Stats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := statsResponse{
			RevealsByCategory: d.Catalog.RevealStats(),
			CatalogSize:       d.Catalog.Count(),
			CatalogReloadedAt: d.Catalog.LastReload().UTC().Format("2006-01-02T15:04:05Z07:00"),
		}

		if d.Store != nil {
			limit := int64(50)
			if v := r.URL.Query().Get("bot_log_limit"); v != "" {
				if n, err := strconv.ParseInt(v, 10, 64); err == nil {
					limit = n
				}
			}
			entries, err := d.Store.RecentBotLog(r.Context(), limit)
			if err != nil {
				d.Logger.Warn("failed to read bot log", logger.Error(err))
			} else {
				resp.RecentBotLog = entries
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
