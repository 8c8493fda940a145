package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/beaconbio/linkgate/internal/httpserver/deps"
	"github.com/beaconbio/linkgate/internal/logger"
)

//go:embed templates/interstitial.html templates/delegate.html
var templateFS embed.FS

var (
	interstitialTmpl = template.Must(template.ParseFS(templateFS, "templates/interstitial.html"))
	delegateTmpl     = template.Must(template.ParseFS(templateFS, "templates/delegate.html"))
)

type interstitialData struct {
	Title               string
	CategoryDescription string
	RevealPath          string
}

type delegateData struct {
	Target string
}

// Out serves phase one for a wrapped link. Non-sensitive links get a
// thin-script delegation to the plain redirect route, so the gate is
// applied only to sensitive destinations. Sensitive links get a
// generic page built from category copy alone: the destination, its
// domain and its title never appear in the rendered HTML.
func Out(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shortID := chi.URLParam(r, "shortId")

		link, err := d.Links.Get(r.Context(), shortID)
		if err != nil {
			writeNotFound(w)
			return
		}

		sensitive := link.Sensitive()
		cat, haveCat := d.Catalog.Get(link.Category)
		if haveCat {
			sensitive = sensitive || cat.Sensitive
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		if !sensitive {
			err := delegateTmpl.Execute(w, delegateData{Target: "/go/" + link.ShortID})
			if err != nil {
				d.Logger.Error("delegate render failed",
					logger.String("short_id", shortID),
					logger.Error(err))
			}
			return
		}

		data := interstitialData{
			Title:      "Restricted content",
			RevealPath: "/link/" + link.ShortID,
		}
		if haveCat {
			if cat.Label != "" {
				data.Title = cat.Label
			}
			data.CategoryDescription = cat.Description
		}

		if err := interstitialTmpl.Execute(w, data); err != nil {
			d.Logger.Error("interstitial render failed",
				logger.String("short_id", shortID),
				logger.Error(err))
		}
	}
}
