// Package payouts serves withdrawal of earned balance: the on-demand
// financial summary, payout initiation, history, and cancellation. Amount
// checks (minimum, available balance) and the masked bank snapshot are the
// store's responsibility; this layer adds ownership scoping and the
// pending-only cancellation rule.
package payouts

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shuzaifak/crowd/internal/app/store"
	sysauth "github.com/shuzaifak/crowd/internal/app/system/auth"
	"github.com/shuzaifak/crowd/internal/app/system/httpjson"
	"github.com/shuzaifak/crowd/internal/app/system/inputval"
	"github.com/shuzaifak/crowd/internal/app/system/timeouts"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// Handler handles /payouts requests.
type Handler struct {
	Store store.Store
	Log   *zap.Logger
}

// NewHandler creates a new payouts handler.
func NewHandler(s store.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Store: s,
		Log:   logger,
	}
}

type payoutRequest struct {
	BankAccountID string  `json:"bank_account_id" validate:"required,uuid" label:"Bank account id"`
	Amount        float64 `json:"amount"`
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

// ServeSummary handles GET /payouts/summary. Balances are recomputed from
// orders and payouts on every call; nothing is cached.
func (h *Handler) ServeSummary(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	summary, err := h.Store.GetFinancialSummary(ctx, tu.ID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, summary)
}

// ServeListPayouts handles GET /payouts, the caller's payout history,
// newest first.
func (h *Handler) ServeListPayouts(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	payouts, err := h.Store.GetUserPayouts(ctx, tu.ID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, payouts)
}

// ServeInitiatePayout handles POST /payouts. The destination must be one of
// the caller's active accounts; amount floor and balance ceiling surface as
// 422s from the store.
func (h *Handler) ServeInitiatePayout(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req payoutRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid JSON body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.ValidationFailed(w, res.First(), res.Fields())
		return
	}
	if req.Amount <= 0 {
		httpjson.ValidationFailed(w, "Amount must be positive.", []string{"amount"})
		return
	}

	// Initiation reads the account, orders, and payout history before writing.
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "initiate payout")
	defer cancel()

	payout, err := h.Store.InitiatePayout(ctx, tu.ID, req.BankAccountID, req.Amount)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("payout initiated",
		zap.String("payout_id", payout.ID),
		zap.String("user_id", tu.ID),
		zap.Float64("amount", payout.Amount))
	httpjson.Write(w, http.StatusCreated, payout)
}

// ServeCancelPayout handles POST /payouts/{payoutID}/cancel. Only the owner
// can cancel, and only while the payout is still pending; anything further
// along belongs to the processing side.
func (h *Handler) ServeCancelPayout(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	payoutID := chi.URLParam(r, "payoutID")
	payouts, err := h.Store.GetUserPayouts(ctx, tu.ID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	var target *models.Payout
	for i := range payouts {
		if payouts[i].ID == payoutID {
			target = &payouts[i]
			break
		}
	}
	if target == nil {
		httpjson.Error(w, http.StatusNotFound, "NOT_FOUND", "payout not found")
		return
	}
	if target.Status != models.PayoutPending {
		httpjson.Error(w, http.StatusConflict, "NOT_PENDING", "only pending payouts can be cancelled")
		return
	}

	cancelled, err := h.Store.UpdatePayoutStatus(ctx, payoutID, models.PayoutCancelled)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("payout cancelled",
		zap.String("payout_id", cancelled.ID),
		zap.String("user_id", tu.ID))
	httpjson.Write(w, http.StatusOK, cancelled)
}
