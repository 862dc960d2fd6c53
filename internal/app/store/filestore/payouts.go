// internal/app/store/filestore/payouts.go
package filestore

import (
	"context"
	"sort"
	"time"

	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// GetFinancialSummary recomputes a user's balances from their orders and
// payouts; nothing here is cached or stored.
func (s *Store) GetFinancialSummary(ctx context.Context, userID string) (store.FinancialSummary, error) {
	orders, err := load[models.Order](s, colOrders)
	if err != nil {
		return store.FinancialSummary{}, err
	}
	payouts, err := load[models.Payout](s, colPayouts)
	if err != nil {
		return store.FinancialSummary{}, err
	}
	return store.Summarize(userID, orders, payouts, s.settings, time.Now().UTC()), nil
}

// InitiatePayout validates the destination and the amount against the
// current balance, then records a pending payout with a masked bank
// snapshot. On any failure no payout row is written.
func (s *Store) InitiatePayout(ctx context.Context, userID, accountID string, amount float64) (models.Payout, error) {
	accounts, err := load[models.BankAccount](s, colBankAccounts)
	if err != nil {
		return models.Payout{}, err
	}
	i := indexOf(accounts, func(a *models.BankAccount) bool {
		return a.ID == accountID && a.UserID == userID && a.IsActive
	})
	if i < 0 {
		return models.Payout{}, store.ErrInvalidAccount
	}
	account := accounts[i]

	if amount < s.settings.MinimumPayout {
		return models.Payout{}, store.ErrBelowMinimum
	}
	summary, err := s.GetFinancialSummary(ctx, userID)
	if err != nil {
		return models.Payout{}, err
	}
	if amount > summary.AvailableBalance {
		return models.Payout{}, store.ErrInsufficientBalance
	}

	snapshot, err := s.codec.Snapshot(account)
	if err != nil {
		return models.Payout{}, err
	}
	now := time.Now().UTC()
	rec := store.NewPayoutRecord(userID, account, amount, snapshot, s.settings.ArrivalDays, now)

	payouts, err := load[models.Payout](s, colPayouts)
	if err != nil {
		return models.Payout{}, err
	}
	payouts = append(payouts, rec)
	if err := save(s, colPayouts, payouts); err != nil {
		return models.Payout{}, err
	}
	return rec, nil
}

func (s *Store) UpdatePayoutStatus(_ context.Context, payoutID, status string) (models.Payout, error) {
	payouts, err := load[models.Payout](s, colPayouts)
	if err != nil {
		return models.Payout{}, err
	}
	i := indexOf(payouts, func(p *models.Payout) bool { return p.ID == payoutID })
	if i < 0 {
		return models.Payout{}, store.ErrNotFound
	}
	payouts[i].Status = status
	payouts[i].UpdatedAt = time.Now().UTC()
	if err := save(s, colPayouts, payouts); err != nil {
		return models.Payout{}, err
	}
	return payouts[i], nil
}

func (s *Store) GetUserPayouts(_ context.Context, userID string) ([]models.Payout, error) {
	payouts, err := load[models.Payout](s, colPayouts)
	if err != nil {
		return nil, err
	}
	out := payouts[:0:0]
	for _, p := range payouts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.After(out[b].CreatedAt)
		}
		return out[a].ID > out[b].ID
	})
	return out, nil
}
