// Package banking serves the caller's payout destinations. Every response
// carries masked account details; plaintext exists only inside the codec and
// ciphertext only inside the store, so a full account number never crosses
// this boundary in either direction after creation.
package banking

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	bankcodec "github.com/shuzaifak/crowd/internal/app/banking"
	"github.com/shuzaifak/crowd/internal/app/store"
	sysauth "github.com/shuzaifak/crowd/internal/app/system/auth"
	"github.com/shuzaifak/crowd/internal/app/system/httpjson"
	"github.com/shuzaifak/crowd/internal/app/system/inputval"
	"github.com/shuzaifak/crowd/internal/app/system/normalize"
	"github.com/shuzaifak/crowd/internal/app/system/timeouts"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// Handler handles /bank-accounts requests.
type Handler struct {
	Store store.Store
	Codec *bankcodec.Codec
	Log   *zap.Logger
}

// NewHandler creates a new banking handler.
func NewHandler(s store.Store, codec *bankcodec.Codec, logger *zap.Logger) *Handler {
	return &Handler{
		Store: s,
		Codec: codec,
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

// masked converts a stored record into its response form. The store hands out
// copies, so masking in place never touches persisted ciphertext.
func (h *Handler) masked(w http.ResponseWriter, account models.BankAccount) (models.BankAccount, bool) {
	if err := h.Codec.MaskAccount(&account); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return models.BankAccount{}, false
	}
	return account, true
}

// ServeListAccounts handles GET /bank-accounts, the caller's active payout
// destinations, primary first.
func (h *Handler) ServeListAccounts(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	accounts, err := h.Store.GetUserBankAccounts(ctx, tu.ID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	for i := range accounts {
		if err := h.Codec.MaskAccount(&accounts[i]); err != nil {
			httpjson.WriteError(w, h.Log, err)
			return
		}
	}
	httpjson.Write(w, http.StatusOK, accounts)
}

// ServeCreateAccount handles POST /bank-accounts. Which bank-detail fields
// are required and how they must look depends on the account's country; those
// rules live in the codec and surface as MISSING_FIELDS / INVALID_FORMAT.
func (h *Handler) ServeCreateAccount(w http.ResponseWriter, r *http.Request) {
	tu, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req createAccountRequest
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

	account, err := h.Store.CreateBankAccount(ctx, models.BankAccount{
		UserID:            tu.ID,
		Country:           normalize.Country(req.Country),
		BankName:          normalize.Name(req.BankName),
		AccountHolderName: normalize.Name(req.AccountHolderName),
		AccountType:       normalize.Status(req.AccountType),
		Currency:          normalize.Currency(req.Currency),
		AccountNumber:     req.AccountNumber,
		RoutingNumber:     req.RoutingNumber,
		SortCode:          req.SortCode,
		IBAN:              req.IBAN,
		IFSCCode:          req.IFSCCode,
		BSB:               req.BSB,
		IsPrimary:         req.IsPrimary,
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("bank account added",
		zap.String("account_id", account.ID),
		zap.String("user_id", tu.ID),
		zap.String("country", account.Country))

	response, ok := h.masked(w, account)
	if !ok {
		return
	}
	httpjson.Write(w, http.StatusCreated, response)
}
