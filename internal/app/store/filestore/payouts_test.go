// internal/app/store/filestore/payouts_test.go
package filestore_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// seedEarnings creates an event for the organizer and buys tickets against
// it so completed-order revenue exists. Returns the total earned.
func seedEarnings(t *testing.T, ts testStore, organizerID string, quantities ...int) float64 {
	t.Helper()
	ctx := context.Background()
	buyer := createTestUser(t, ts, "payout-buyer@example.com")
	e := createTestEvent(t, ts, organizerID) // General tier at 50

	var total float64
	for _, q := range quantities {
		o, err := ts.CreateOrder(ctx, models.Order{
			EventID:      e.ID,
			BuyerID:      buyer.ID,
			TicketTypeID: e.TicketTypes[0].ID,
			Quantity:     q,
		})
		if err != nil {
			t.Fatalf("CreateOrder(q=%d): %v", q, err)
		}
		total += o.TotalAmount
	}
	return total
}

func TestGetFinancialSummary(t *testing.T) {
	ts := newTestStore(t)
	ctx := context.Background()

	earned := seedEarnings(t, ts, "org-1", 2, 1) // 100 + 50

	// A pending order contributes to the pending balance, not earnings.
	e := createTestEvent(t, ts, "org-1")
	if _, err := ts.CreateOrder(ctx, models.Order{
		EventID:      e.ID,
		BuyerID:      "someone",
		TicketTypeID: e.TicketTypes[0].ID,
		Quantity:     1,
		Status:       models.OrderPending,
	}); err != nil {
		t.Fatalf("pending order: %v", err)
	}

	sum, err := ts.GetFinancialSummary(ctx, "org-1")
	if err != nil {
		t.Fatalf("GetFinancialSummary: %v", err)
	}
	if sum.TotalEarnings != earned {
		t.Errorf("earnings = %v, want %v", sum.TotalEarnings, earned)
	}
	if sum.PendingBalance != 50 {
		t.Errorf("pending = %v, want 50", sum.PendingBalance)
	}
	if sum.AvailableBalance != earned {
		t.Errorf("available = %v, want %v with no payouts yet", sum.AvailableBalance, earned)
	}
	if sum.MinimumPayout != 25 {
		t.Errorf("minimum = %v, want the default 25", sum.MinimumPayout)
	}
	if !sum.NextPayoutDate.After(time.Now().UTC()) || sum.NextPayoutDate.Weekday() != time.Friday {
		t.Errorf("next payout date = %v, want a future Friday", sum.NextPayoutDate)
	}

	// Completed payouts reduce the available balance; pending ones do not.
	account, err := ts.CreateBankAccount(ctx, usBankAccount("org-1"))
	if err != nil {
		t.Fatalf("CreateBankAccount: %v", err)
	}
	p, err := ts.InitiatePayout(ctx, "org-1", account.ID, 100)
	if err != nil {
		t.Fatalf("InitiatePayout: %v", err)
	}
	sum, _ = ts.GetFinancialSummary(ctx, "org-1")
	if sum.AvailableBalance != earned || sum.TotalPaidOut != 0 {
		t.Errorf("pending payout must not move balances: %+v", sum)
	}

	if _, err := ts.UpdatePayoutStatus(ctx, p.ID, models.PayoutCompleted); err != nil {
		t.Fatalf("UpdatePayoutStatus: %v", err)
	}
	sum, _ = ts.GetFinancialSummary(ctx, "org-1")
	if sum.TotalPaidOut != 100 || sum.AvailableBalance != earned-100 {
		t.Errorf("completed payout not reflected: %+v", sum)
	}
}

func TestInitiatePayoutGuards(t *testing.T) {
	ts := newTestStore(t)
	ctx := context.Background()

	seedEarnings(t, ts, "org-1", 2) // 100 available
	account, err := ts.CreateBankAccount(ctx, usBankAccount("org-1"))
	if err != nil {
		t.Fatalf("CreateBankAccount: %v", err)
	}
	stranger, err := ts.CreateBankAccount(ctx, usBankAccount("someone-else"))
	if err != nil {
		t.Fatalf("CreateBankAccount(stranger): %v", err)
	}

	tests := []struct {
		name      string
		accountID string
		amount    float64
		want      error
	}{
		{"unknown account", "missing", 50, store.ErrInvalidAccount},
		{"someone else's account", stranger.ID, 50, store.ErrInvalidAccount},
		{"below minimum", account.ID, 24.99, store.ErrBelowMinimum},
		{"above balance", account.ID, 100.01, store.ErrInsufficientBalance},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ts.InitiatePayout(ctx, "org-1", tc.accountID, tc.amount); !errors.Is(err, tc.want) {
				t.Errorf("InitiatePayout = %v, want %v", err, tc.want)
			}
		})
	}

	// Deleted accounts cannot receive payouts either.
	if err := ts.DeleteBankAccount(ctx, account.ID); err != nil {
		t.Fatalf("DeleteBankAccount: %v", err)
	}
	if _, err := ts.InitiatePayout(ctx, "org-1", account.ID, 50); !errors.Is(err, store.ErrInvalidAccount) {
		t.Errorf("payout to deleted account = %v, want ErrInvalidAccount", err)
	}

	// None of the failures may have written a payout row.
	payouts, err := ts.GetUserPayouts(ctx, "org-1")
	if err != nil || len(payouts) != 0 {
		t.Fatalf("failed initiations left %d payout rows", len(payouts))
	}
}

func TestInitiatePayoutRecordsMaskedSnapshot(t *testing.T) {
	ts := newTestStore(t)
	ctx := context.Background()

	seedEarnings(t, ts, "org-1", 4) // 200 available
	account, err := ts.CreateBankAccount(ctx, usBankAccount("org-1"))
	if err != nil {
		t.Fatalf("CreateBankAccount: %v", err)
	}

	before := time.Now().UTC()
	p, err := ts.InitiatePayout(ctx, "org-1", account.ID, 150)
	if err != nil {
		t.Fatalf("InitiatePayout: %v", err)
	}
	if p.Status != models.PayoutPending {
		t.Errorf("status = %q, want pending", p.Status)
	}
	if p.Amount != 150 || p.BankAccountID != account.ID || p.Currency != "USD" {
		t.Errorf("payout fields wrong: %+v", p)
	}
	if p.BankSnapshot.AccountNumber != "********6789" {
		t.Errorf("snapshot = %q, want masked ********6789", p.BankSnapshot.AccountNumber)
	}
	if p.BankSnapshot.BankName != "First Example Bank" || p.BankSnapshot.Country != "US" {
		t.Errorf("snapshot metadata wrong: %+v", p.BankSnapshot)
	}
	wantArrival := before.AddDate(0, 0, 3)
	if p.EstimatedArrival.Before(wantArrival.Add(-time.Minute)) || p.EstimatedArrival.After(wantArrival.Add(time.Minute)) {
		t.Errorf("estimated arrival = %v, want about %v", p.EstimatedArrival, wantArrival)
	}

	// The snapshot on disk is masked, never plaintext.
	raw := string(ts.readCollectionFile(t, "payouts"))
	if !strings.Contains(raw, "********6789") || strings.Contains(raw, "000123456789") {
		t.Error("payout snapshot on disk is not masked")
	}

	list, err := ts.GetUserPayouts(ctx, "org-1")
	if err != nil || len(list) != 1 || list[0].ID != p.ID {
		t.Fatalf("GetUserPayouts = %+v, %v", list, err)
	}
}

func TestUpdatePayoutStatus(t *testing.T) {
	ts := newTestStore(t)
	ctx := context.Background()

	seedEarnings(t, ts, "org-1", 2)
	account, _ := ts.CreateBankAccount(ctx, usBankAccount("org-1"))
	p, err := ts.InitiatePayout(ctx, "org-1", account.ID, 100)
	if err != nil {
		t.Fatalf("InitiatePayout: %v", err)
	}

	cancelled, err := ts.UpdatePayoutStatus(ctx, p.ID, models.PayoutCancelled)
	if err != nil {
		t.Fatalf("UpdatePayoutStatus: %v", err)
	}
	if cancelled.Status != models.PayoutCancelled {
		t.Errorf("status = %q", cancelled.Status)
	}

	if _, err := ts.UpdatePayoutStatus(ctx, "missing", models.PayoutCompleted); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("update missing payout = %v, want ErrNotFound", err)
	}
}
