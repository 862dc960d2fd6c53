// Package events serves event management for organizers, the public event
// listing, and ticket purchases. Management routes are scoped to the event's
// organizer; a stranger probing another organizer's event id gets the same
// 404 as a missing one.
package events

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shuzaifak/crowd/internal/app/store"
	sysauth "github.com/shuzaifak/crowd/internal/app/system/auth"
	"github.com/shuzaifak/crowd/internal/app/system/htmlsanitize"
	"github.com/shuzaifak/crowd/internal/app/system/httpjson"
	"github.com/shuzaifak/crowd/internal/app/system/inputval"
	"github.com/shuzaifak/crowd/internal/app/system/normalize"
	"github.com/shuzaifak/crowd/internal/app/system/timeouts"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// Handler handles /events and /orders requests.
type Handler struct {
	Store store.Store
	Log   *zap.Logger
}

// NewHandler creates a new events handler.
func NewHandler(s store.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Store: s,
		Log:   logger,
	}
}

// currentUser pulls the authenticated account from the request context,
// answering 401 when an anonymous request slipped past the middleware.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) (*sysauth.TokenUser, bool) {
	tu, ok := sysauth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return nil, false
	}
	return tu, true
}

// loadOwnedEvent resolves an event and checks that tu owns it. Missing,
// soft-deleted, and foreign events all answer the same 404.
func (h *Handler) loadOwnedEvent(ctx context.Context, w http.ResponseWriter, id string, tu *sysauth.TokenUser) (*models.Event, bool) {
	event, err := h.Store.GetEventByID(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return nil, false
	}
	if event == nil || event.OrganizerID != tu.ID {
		httpjson.Error(w, http.StatusNotFound, "NOT_FOUND", "event not found")
		return nil, false
	}
	return event, true
}

// ServeCreateEvent handles POST /events. The event starts as a draft owned
// by the caller; publishing is a separate transition.
func (h *Handler) ServeCreateEvent(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req createEventRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid JSON body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.ValidationFailed(w, res.First(), res.Fields())
		return
	}
	if msg, field, ok := req.check(); !ok {
		httpjson.ValidationFailed(w, msg, []string{field})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	currency := normalize.Currency(req.Currency)
	if currency == "" {
		currency = "USD"
	}

	event, err := h.Store.CreateEvent(ctx, models.Event{
		Title:        normalize.Name(req.Title),
		Description:  htmlsanitize.Sanitize(req.Description),
		Category:     normalize.Name(req.Category),
		Location:     normalize.Name(req.Location),
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Price:        req.Price,
		Currency:     currency,
		MaxAttendees: req.MaxAttendees,
		OrganizerID:  tu.ID,
		IsFeatured:   req.IsFeatured,
		TicketTypes:  req.TicketTypes,
		Tags:         req.Tags,
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("event created",
		zap.String("event_id", event.ID),
		zap.String("organizer_id", tu.ID))
	httpjson.Write(w, http.StatusCreated, event)
}

// ServeListEvents handles GET /events, listing the caller's own events,
// drafts included, newest first.
func (h *Handler) ServeListEvents(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	all, err := h.Store.GetAllEvents(ctx)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	mine := make([]models.Event, 0, len(all))
	for _, e := range all {
		if e.OrganizerID == tu.ID {
			mine = append(mine, e)
		}
	}
	httpjson.Write(w, http.StatusOK, mine)
}

// ServeGetEvent handles GET /events/{eventID}.
func (h *Handler) ServeGetEvent(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	event, ok := h.loadOwnedEvent(ctx, w, chi.URLParam(r, "eventID"), tu)
	if !ok {
		return
	}
	httpjson.Write(w, http.StatusOK, event)
}

// ServeUpdateEvent handles PATCH /events/{eventID}. Absent fields keep their
// stored values; ticket types are replaced wholesale with sold counts carried
// over by id.
func (h *Handler) ServeUpdateEvent(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req eventPatchRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	event, ok := h.loadOwnedEvent(ctx, w, chi.URLParam(r, "eventID"), tu)
	if !ok {
		return
	}
	if msg, field, ok := req.check(event); !ok {
		httpjson.ValidationFailed(w, msg, []string{field})
		return
	}

	patch := store.EventPatch{
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Price:        req.Price,
		MaxAttendees: req.MaxAttendees,
		IsFeatured:   req.IsFeatured,
		TicketTypes:  req.TicketTypes,
		Tags:         req.Tags,
	}
	if req.Title != nil {
		title := normalize.Name(*req.Title)
		patch.Title = &title
	}
	if req.Description != nil {
		desc := htmlsanitize.Sanitize(*req.Description)
		patch.Description = &desc
	}
	if req.Category != nil {
		category := normalize.Name(*req.Category)
		patch.Category = &category
	}
	if req.Location != nil {
		location := normalize.Name(*req.Location)
		patch.Location = &location
	}
	if req.Currency != nil {
		currency := normalize.Currency(*req.Currency)
		patch.Currency = &currency
	}

	updated, err := h.Store.UpdateEvent(ctx, event.ID, patch)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// ServePublishEvent handles POST /events/{eventID}/publish. Publishing an
// already published event is a no-op that keeps the original publish time.
func (h *Handler) ServePublishEvent(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	event, ok := h.loadOwnedEvent(ctx, w, chi.URLParam(r, "eventID"), tu)
	if !ok {
		return
	}

	published, err := h.Store.PublishEvent(ctx, event.ID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("event published",
		zap.String("event_id", published.ID),
		zap.String("organizer_id", tu.ID))
	httpjson.Write(w, http.StatusOK, published)
}

// ServeDeleteEvent handles DELETE /events/{eventID}. The event disappears
// from every listing; existing orders keep their records.
func (h *Handler) ServeDeleteEvent(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	event, ok := h.loadOwnedEvent(ctx, w, chi.URLParam(r, "eventID"), tu)
	if !ok {
		return
	}

	if err := h.Store.DeleteEvent(ctx, event.ID); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("event deleted",
		zap.String("event_id", event.ID),
		zap.String("organizer_id", tu.ID))
	w.WriteHeader(http.StatusNoContent)
}
