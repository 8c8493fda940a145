package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/beaconbio/linkgate/internal/httpserver/deps"
	"github.com/beaconbio/linkgate/internal/httpserver/handlers"
	"github.com/beaconbio/linkgate/internal/httpserver/mw"
)

func init() { Register(registerRedirect) }

func registerRedirect(r chi.Router, d deps.Deps) {
	r.With(mw.NoIndex).Get("/go/{shortId}", handlers.Redirect(d))
}
