package payouts_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shuzaifak/crowd/internal/app/banking"
	"github.com/shuzaifak/crowd/internal/app/features/payouts"
	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/app/store/filestore"
	sysauth "github.com/shuzaifak/crowd/internal/app/system/auth"
	"github.com/shuzaifak/crowd/internal/app/system/httpjson"
	"github.com/shuzaifak/crowd/internal/domain/models"
	"github.com/shuzaifak/crowd/internal/testutil"
)

// newTestRouter builds the /payouts subtree on a fresh file-backed store.
// Requests authenticate by context injection, the same context key the token
// middleware fills in production.
func newTestRouter(t *testing.T) (chi.Router, *testutil.Fixtures) {
	t.Helper()

	codec, err := banking.NewCodec("payouts-test-secret")
	if err != nil {
		t.Fatalf("banking.NewCodec: %v", err)
	}
	s, err := filestore.New(t.TempDir(), codec, store.DefaultSettings())
	if err != nil {
		t.Fatalf("filestore.New: %v", err)
	}
	tm, err := sysauth.NewTokenManager("test-token-secret-must-be-32-chars-long", "crowd-test", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	h := payouts.NewHandler(s, zap.NewNop())

	r := chi.NewRouter()
	r.Mount("/payouts", payouts.Routes(h, tm))
	return r, testutil.NewFixtures(t, s)
}

// asUser stamps a request with the identity of a stored account.
func asUser(req *http.Request, u models.User) *http.Request {
	return testutil.WithUser(req, testutil.TestUser{
		ID:    u.ID,
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	})
}

// seedEarnings gives the organizer a published event with 150 in completed
// sales and 50 still pending, using the fixture event's 50-per-ticket
// General tier.
func seedEarnings(t *testing.T, fx *testutil.Fixtures, org, buyer models.User) {
	t.Helper()
	ctx := context.Background()

	ev := fx.CreatePublishedEvent(ctx, org.ID, "Expo")
	fx.CreateOrder(ctx, ev, buyer.ID, 2, "")
	fx.CreateOrder(ctx, ev, buyer.ID, 1, "")
	fx.CreateOrder(ctx, ev, buyer.ID, 1, models.OrderPending)
}

func getSummary(t *testing.T, srv chi.Router, u models.User) store.FinancialSummary {
	t.Helper()

	req := asUser(testutil.NewRequest("GET", "/payouts/summary"), u)
	rec := testutil.NewRecorder()
	srv.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var got store.FinancialSummary
	rec.DecodeJSON(t, &got)
	return got
}

func initiatePayout(t *testing.T, srv chi.Router, u models.User, accountID string, amount float64) *testutil.ResponseRecorder {
	t.Helper()

	body := map[string]any{"bank_account_id": accountID, "amount": amount}
	req := asUser(testutil.NewJSONRequest("POST", "/payouts", body), u)
	rec := testutil.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestSummary(t *testing.T) {
	srv, fx := newTestRouter(t)
	ctx := context.Background()
	org := fx.CreateOrganizer(ctx, "Orla Chen", "orla@example.com")
	buyer := fx.CreateUser(ctx, "Sam Ortiz", "sam@example.com")
	seedEarnings(t, fx, org, buyer)

	got := getSummary(t, srv, org)
	if got.TotalEarnings != 150 {
		t.Errorf("total earnings: got %v, want 150", got.TotalEarnings)
	}
	if got.PendingBalance != 50 {
		t.Errorf("pending balance: got %v, want 50", got.PendingBalance)
	}
	if got.AvailableBalance != 150 {
		t.Errorf("available balance: got %v, want 150", got.AvailableBalance)
	}
	if got.TotalPaidOut != 0 {
		t.Errorf("total paid out: got %v, want 0", got.TotalPaidOut)
	}
	if got.MinimumPayout != 25 {
		t.Errorf("minimum payout: got %v, want 25", got.MinimumPayout)
	}
	if got.NextPayoutDate.Weekday() != time.Friday {
		t.Errorf("next payout day: got %v, want Friday", got.NextPayoutDate.Weekday())
	}
	if !got.NextPayoutDate.After(time.Now().UTC()) {
		t.Errorf("next payout date is not in the future: %v", got.NextPayoutDate)
	}

	// The buyer earned nothing; their summary is empty.
	buyerSummary := getSummary(t, srv, buyer)
	if buyerSummary.TotalEarnings != 0 || buyerSummary.AvailableBalance != 0 {
		t.Errorf("buyer summary should be empty: %+v", buyerSummary)
	}
}

func TestInitiatePayout(t *testing.T) {
	srv, fx := newTestRouter(t)
	ctx := context.Background()
	org := fx.CreateOrganizer(ctx, "Orla Chen", "orla@example.com")
	buyer := fx.CreateUser(ctx, "Sam Ortiz", "sam@example.com")
	seedEarnings(t, fx, org, buyer)
	account := fx.CreateBankAccount(ctx, org.ID)

	rec := initiatePayout(t, srv, org, account.ID, 100)
	rec.AssertStatus(t, http.StatusCreated)

	var got models.Payout
	rec.DecodeJSON(t, &got)
	if got.Status != models.PayoutPending {
		t.Errorf("status: got %q, want pending", got.Status)
	}
	if got.Amount != 100 {
		t.Errorf("amount: got %v, want 100", got.Amount)
	}
	if got.BankSnapshot.AccountNumber != "********6789" {
		t.Errorf("snapshot account number: got %q, want ********6789", got.BankSnapshot.AccountNumber)
	}
	if arrival := got.EstimatedArrival.Sub(got.CreatedAt); arrival != 72*time.Hour {
		t.Errorf("estimated arrival: got %v after creation, want 72h", arrival)
	}

	// Pending payouts do not reduce the available balance.
	summary := getSummary(t, srv, org)
	if summary.AvailableBalance != 150 {
		t.Errorf("available after pending payout: got %v, want 150", summary.AvailableBalance)
	}

	req := asUser(testutil.NewRequest("GET", "/payouts"), org)
	listRec := testutil.NewRecorder()
	srv.ServeHTTP(listRec, req)
	listRec.AssertStatus(t, http.StatusOK)
	var listed []models.Payout
	listRec.DecodeJSON(t, &listed)
	if len(listed) != 1 || listed[0].ID != got.ID {
		t.Errorf("payout history: got %+v", listed)
	}
}

func TestInitiatePayout_AmountRules(t *testing.T) {
	srv, fx := newTestRouter(t)
	ctx := context.Background()
	org := fx.CreateOrganizer(ctx, "Orla Chen", "orla@example.com")
	buyer := fx.CreateUser(ctx, "Sam Ortiz", "sam@example.com")
	seedEarnings(t, fx, org, buyer)
	account := fx.CreateBankAccount(ctx, org.ID)

	cases := []struct {
		name     string
		amount   float64
		wantCode string
	}{
		{"below minimum", 10, "BELOW_MINIMUM"},
		{"above available balance", 1000, "INSUFFICIENT_BALANCE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := initiatePayout(t, srv, org, account.ID, tc.amount)
			rec.AssertStatus(t, http.StatusUnprocessableEntity)
			var resp httpjson.ErrorResponse
			rec.DecodeJSON(t, &resp)
			if resp.Code != tc.wantCode {
				t.Errorf("code: got %q, want %q", resp.Code, tc.wantCode)
			}
		})
	}

	// No payout row survives a failed initiation.
	req := asUser(testutil.NewRequest("GET", "/payouts"), org)
	rec := testutil.NewRecorder()
	srv.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	var listed []models.Payout
	rec.DecodeJSON(t, &listed)
	if len(listed) != 0 {
		t.Errorf("payout history after failures: got %d rows, want 0", len(listed))
	}
}

func TestInitiatePayout_ForeignAccount(t *testing.T) {
	srv, fx := newTestRouter(t)
	ctx := context.Background()
	org := fx.CreateOrganizer(ctx, "Orla Chen", "orla@example.com")
	buyer := fx.CreateUser(ctx, "Sam Ortiz", "sam@example.com")
	seedEarnings(t, fx, org, buyer)
	foreign := fx.CreateBankAccount(ctx, buyer.ID)

	rec := initiatePayout(t, srv, org, foreign.ID, 100)
	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	var resp httpjson.ErrorResponse
	rec.DecodeJSON(t, &resp)
	if resp.Code != "INVALID_ACCOUNT" {
		t.Errorf("code: got %q, want INVALID_ACCOUNT", resp.Code)
	}
}

func TestInitiatePayout_Validation(t *testing.T) {
	srv, fx := newTestRouter(t)
	ctx := context.Background()
	org := fx.CreateOrganizer(ctx, "Orla Chen", "orla@example.com")
	account := fx.CreateBankAccount(ctx, org.ID)

	cases := []struct {
		name      string
		body      map[string]any
		wantField string
	}{
		{"missing account", map[string]any{"amount": 50.0}, "bank_account_id"},
		{"malformed account id", map[string]any{"bank_account_id": "primary", "amount": 50.0}, "bank_account_id"},
		{"zero amount", map[string]any{"bank_account_id": account.ID, "amount": 0.0}, "amount"},
		{"negative amount", map[string]any{"bank_account_id": account.ID, "amount": -20.0}, "amount"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := asUser(testutil.NewJSONRequest("POST", "/payouts", tc.body), org)
			rec := testutil.NewRecorder()
			srv.ServeHTTP(rec, req)

			rec.AssertStatus(t, http.StatusBadRequest)
			var resp httpjson.ErrorResponse
			rec.DecodeJSON(t, &resp)
			if resp.Code != "VALIDATION_FAILED" {
				t.Errorf("code: got %q, want VALIDATION_FAILED", resp.Code)
			}
			if len(resp.Fields) != 1 || resp.Fields[0] != tc.wantField {
				t.Errorf("fields: got %v, want [%s]", resp.Fields, tc.wantField)
			}
		})
	}
}

func TestCancelPayout(t *testing.T) {
	srv, fx := newTestRouter(t)
	ctx := context.Background()
	org := fx.CreateOrganizer(ctx, "Orla Chen", "orla@example.com")
	buyer := fx.CreateUser(ctx, "Sam Ortiz", "sam@example.com")
	seedEarnings(t, fx, org, buyer)
	account := fx.CreateBankAccount(ctx, org.ID)

	rec := initiatePayout(t, srv, org, account.ID, 100)
	rec.AssertStatus(t, http.StatusCreated)
	var payout models.Payout
	rec.DecodeJSON(t, &payout)

	req := asUser(testutil.NewRequest("POST", "/payouts/"+payout.ID+"/cancel"), org)
	cancelRec := testutil.NewRecorder()
	srv.ServeHTTP(cancelRec, req)

	cancelRec.AssertStatus(t, http.StatusOK)
	var cancelled models.Payout
	cancelRec.DecodeJSON(t, &cancelled)
	if cancelled.Status != models.PayoutCancelled {
		t.Errorf("status: got %q, want cancelled", cancelled.Status)
	}

	// A cancelled payout never counts against the balance.
	summary := getSummary(t, srv, org)
	if summary.AvailableBalance != 150 || summary.TotalPaidOut != 0 {
		t.Errorf("summary after cancel: %+v", summary)
	}
}

func TestCancelPayout_OnlyPendingAndOwned(t *testing.T) {
	srv, fx := newTestRouter(t)
	ctx := context.Background()
	org := fx.CreateOrganizer(ctx, "Orla Chen", "orla@example.com")
	buyer := fx.CreateUser(ctx, "Sam Ortiz", "sam@example.com")
	seedEarnings(t, fx, org, buyer)
	account := fx.CreateBankAccount(ctx, org.ID)

	rec := initiatePayout(t, srv, org, account.ID, 100)
	rec.AssertStatus(t, http.StatusCreated)
	var payout models.Payout
	rec.DecodeJSON(t, &payout)

	// Someone else's payout reads as missing.
	req := asUser(testutil.NewRequest("POST", "/payouts/"+payout.ID+"/cancel"), buyer)
	foreignRec := testutil.NewRecorder()
	srv.ServeHTTP(foreignRec, req)
	foreignRec.AssertStatus(t, http.StatusNotFound)

	// Unknown ids too.
	req = asUser(testutil.NewRequest("POST", "/payouts/"+uuid.NewString()+"/cancel"), org)
	unknownRec := testutil.NewRecorder()
	srv.ServeHTTP(unknownRec, req)
	unknownRec.AssertStatus(t, http.StatusNotFound)

	// Once the payout has moved on, cancellation is refused.
	if _, err := fx.Store().UpdatePayoutStatus(ctx, payout.ID, models.PayoutCompleted); err != nil {
		t.Fatalf("complete payout: %v", err)
	}
	req = asUser(testutil.NewRequest("POST", "/payouts/"+payout.ID+"/cancel"), org)
	doneRec := testutil.NewRecorder()
	srv.ServeHTTP(doneRec, req)
	doneRec.AssertStatus(t, http.StatusConflict)
	var resp httpjson.ErrorResponse
	doneRec.DecodeJSON(t, &resp)
	if resp.Code != "NOT_PENDING" {
		t.Errorf("code: got %q, want NOT_PENDING", resp.Code)
	}
}

func TestSummary_CompletedPayoutReducesAvailable(t *testing.T) {
	srv, fx := newTestRouter(t)
	ctx := context.Background()
	org := fx.CreateOrganizer(ctx, "Orla Chen", "orla@example.com")
	buyer := fx.CreateUser(ctx, "Sam Ortiz", "sam@example.com")
	seedEarnings(t, fx, org, buyer)
	account := fx.CreateBankAccount(ctx, org.ID)

	rec := initiatePayout(t, srv, org, account.ID, 100)
	rec.AssertStatus(t, http.StatusCreated)
	var payout models.Payout
	rec.DecodeJSON(t, &payout)

	if _, err := fx.Store().UpdatePayoutStatus(ctx, payout.ID, models.PayoutCompleted); err != nil {
		t.Fatalf("complete payout: %v", err)
	}

	summary := getSummary(t, srv, org)
	if summary.TotalPaidOut != 100 {
		t.Errorf("total paid out: got %v, want 100", summary.TotalPaidOut)
	}
	if summary.AvailableBalance != 50 {
		t.Errorf("available balance: got %v, want 50", summary.AvailableBalance)
	}
}
