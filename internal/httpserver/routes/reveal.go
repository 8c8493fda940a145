package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/beaconbio/linkgate/internal/httpserver/deps"
	"github.com/beaconbio/linkgate/internal/httpserver/handlers"
	"github.com/beaconbio/linkgate/internal/httpserver/mw"
)

func init() { Register(registerReveal) }

func registerReveal(r chi.Router, d deps.Deps) {
	r.With(mw.NoIndex).Post("/link/{shortId}", handlers.Reveal(d))
}
