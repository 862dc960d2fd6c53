package events

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shuzaifak/crowd/internal/app/system/httpjson"
	"github.com/shuzaifak/crowd/internal/app/system/inputval"
	"github.com/shuzaifak/crowd/internal/app/system/normalize"
	"github.com/shuzaifak/crowd/internal/app/system/timeouts"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// ServeCreateOrder handles POST /events/{eventID}/orders. Any signed-in user
// can buy tickets to a published event; unit price, total, and currency come
// from the stored event, never from the request.
func (h *Handler) ServeCreateOrder(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req orderRequest
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

	eventID := chi.URLParam(r, "eventID")
	event, err := h.Store.GetEventByID(ctx, eventID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	// Drafts are invisible to buyers, so an unpublished event reads as
	// missing rather than as forbidden.
	if event == nil || event.Status != models.EventPublished {
		httpjson.Error(w, http.StatusNotFound, "NOT_FOUND", "event not found")
		return
	}

	order, err := h.Store.CreateOrder(ctx, models.Order{
		EventID:      event.ID,
		BuyerID:      tu.ID,
		TicketTypeID: req.TicketTypeID,
		Quantity:     req.Quantity,
		Status:       normalize.Status(req.Status),
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("event_id", event.ID),
		zap.String("buyer_id", tu.ID),
		zap.Int("quantity", order.Quantity))
	httpjson.Write(w, http.StatusCreated, order)
}

// ServeListOrders handles GET /orders, the caller's purchase history,
// newest first.
func (h *Handler) ServeListOrders(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	orders, err := h.Store.GetUserOrders(ctx, tu.ID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, orders)
}
