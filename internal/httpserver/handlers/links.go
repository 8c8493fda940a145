package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/beaconbio/linkgate/internal/httpserver/deps"
	"github.com/beaconbio/linkgate/internal/linkwrap"
	"github.com/beaconbio/linkgate/internal/logger"
)

type createLinkRequest struct {
	URL        string `json:"url"`
	Kind       string `json:"kind,omitempty"`
	Category   string `json:"category,omitempty"`
	TitleAlias string `json:"title_alias,omitempty"`
	TTLSeconds int64  `json:"ttl_seconds,omitempty"`
}

type createLinkResponse struct {
	*linkwrap.WrappedLink
	WrapperURL string `json:"wrapper_url"`
}

// CreateLink mints a wrapped link. The route is admin-gated; the
// response includes the public wrapper URL to hand to the client.
func CreateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createLinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "invalid json body")
			return
		}

		kind := linkwrap.Kind(req.Kind)
		if req.Kind != "" && kind != linkwrap.KindNormal && kind != linkwrap.KindSensitive {
			writeBadRequest(w, "kind must be normal or sensitive")
			return
		}

		ttl := time.Duration(req.TTLSeconds) * time.Second
		if req.TTLSeconds == 0 {
			ttl = d.DefaultLinkTTL
		}
		if ttl < 0 {
			writeBadRequest(w, "ttl_seconds must not be negative")
			return
		}

		link, err := d.Links.Wrap(r.Context(), linkwrap.WrapRequest{
			DestinationURL: req.URL,
			Kind:           kind,
			Category:       req.Category,
			TitleAlias:     req.TitleAlias,
			TTL:            ttl,
		})
		if err != nil {
			if errors.Is(err, linkwrap.ErrInvalidDestination) {
				writeBadRequest(w, "url is not a valid destination")
				return
			}
			d.Logger.Error("link creation failed", logger.Error(err))
			writeInternalError(w)
			return
		}

		writeJSON(w, http.StatusCreated, createLinkResponse{
			WrappedLink: link,
			WrapperURL:  d.PublicBaseURL + "/out/" + link.ShortID,
		})
	}
}
