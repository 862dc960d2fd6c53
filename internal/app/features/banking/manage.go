package banking

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shuzaifak/crowd/internal/app/store"
	sysauth "github.com/shuzaifak/crowd/internal/app/system/auth"
	"github.com/shuzaifak/crowd/internal/app/system/httpjson"
	"github.com/shuzaifak/crowd/internal/app/system/normalize"
	"github.com/shuzaifak/crowd/internal/app/system/timeouts"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// loadOwnedAccount resolves an account and checks that tu owns it. Missing,
// deleted, and foreign accounts all answer the same 404.
func (h *Handler) loadOwnedAccount(ctx context.Context, w http.ResponseWriter, id string, tu *sysauth.TokenUser) (*models.BankAccount, bool) {
	account, err := h.Store.GetBankAccountByID(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return nil, false
	}
	if account == nil || account.UserID != tu.ID {
		httpjson.Error(w, http.StatusNotFound, "NOT_FOUND", "bank account not found")
		return nil, false
	}
	return account, true
}

// ServeUpdateAccount handles PATCH /bank-accounts/{accountID}. Provided
// sensitive fields are re-validated under the account's country schema and
// re-encrypted; the country itself is fixed at creation.
func (h *Handler) ServeUpdateAccount(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req updateAccountRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid JSON body")
		return
	}
	if msg, field, ok := req.check(); !ok {
		httpjson.ValidationFailed(w, msg, []string{field})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	account, ok := h.loadOwnedAccount(ctx, w, chi.URLParam(r, "accountID"), tu)
	if !ok {
		return
	}

	patch := store.BankAccountPatch{
		BankName:          req.BankName,
		AccountHolderName: req.AccountHolderName,
		AccountNumber:     req.AccountNumber,
		RoutingNumber:     req.RoutingNumber,
		SortCode:          req.SortCode,
		IBAN:              req.IBAN,
		IFSCCode:          req.IFSCCode,
		BSB:               req.BSB,
		IsPrimary:         req.IsPrimary,
	}
	if req.AccountType != nil {
		t := normalize.Status(*req.AccountType)
		patch.AccountType = &t
	}
	if req.Currency != nil {
		c := normalize.Currency(*req.Currency)
		patch.Currency = &c
	}

	updated, err := h.Store.UpdateBankAccount(ctx, account.ID, patch)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	response, ok := h.masked(w, updated)
	if !ok {
		return
	}
	httpjson.Write(w, http.StatusOK, response)
}

// ServeDeleteAccount handles DELETE /bank-accounts/{accountID}. The row
// survives as a soft delete so payout history keeps its snapshot context.
func (h *Handler) ServeDeleteAccount(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	account, ok := h.loadOwnedAccount(ctx, w, chi.URLParam(r, "accountID"), tu)
	if !ok {
		return
	}

	if err := h.Store.DeleteBankAccount(ctx, account.ID); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("bank account removed",
		zap.String("account_id", account.ID),
		zap.String("user_id", tu.ID))
	w.WriteHeader(http.StatusNoContent)
}

// ServeSetPrimary handles POST /bank-accounts/{accountID}/primary, promoting
// one account and demoting the caller's others in the same write.
func (h *Handler) ServeSetPrimary(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	account, err := h.Store.SetPrimaryBankAccount(ctx, tu.ID, chi.URLParam(r, "accountID"))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	response, ok := h.masked(w, account)
	if !ok {
		return
	}
	httpjson.Write(w, http.StatusOK, response)
}
