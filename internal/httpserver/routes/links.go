package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/beaconbio/linkgate/internal/httpserver/deps"
	"github.com/beaconbio/linkgate/internal/httpserver/handlers"
	"github.com/beaconbio/linkgate/internal/httpserver/mw"
)

func init() { Register(registerLinks) }

func registerLinks(r chi.Router, d deps.Deps) {
	r.With(mw.AllowOnlyCIDRS(d.AdminCIDRS, d.TrustProxy, d.Logger)).Post("/api/links", handlers.CreateLink(d))
}
