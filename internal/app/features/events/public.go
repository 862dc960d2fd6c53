package events

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"

	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/app/system/httpjson"
	"github.com/shuzaifak/crowd/internal/app/system/normalize"
	"github.com/shuzaifak/crowd/internal/app/system/paging"
	"github.com/shuzaifak/crowd/internal/app/system/timeouts"
)

// ServePublicEvents handles GET /events/public. No token is required; only
// published, still-upcoming events are listed, soonest first.
//
// Supported query parameters: category, location, search, offset, limit.
func (h *Handler) ServePublicEvents(w http.ResponseWriter, r *http.Request) {
	window := paging.FromRequest(r)
	filter := store.EventFilter{
		Category: normalize.QueryParam(query.Get(r, "category")),
		Location: normalize.QueryParam(query.Get(r, "location")),
		Search:   normalize.QueryParam(query.Get(r, "search")),
		Offset:   window.Offset,
		Limit:    window.Limit,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	events, err := h.Store.GetPublicEvents(ctx, filter)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, events)
}
