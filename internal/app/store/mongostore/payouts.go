// internal/app/store/mongostore/payouts.go
package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// GetFinancialSummary recomputes a user's balances from their orders and
// payouts; nothing here is cached or stored.
func (s *Store) GetFinancialSummary(ctx context.Context, userID string) (store.FinancialSummary, error) {
	orders, err := findAll[models.Order](ctx, s.orders(), bson.M{"organizer_id": userID})
	if err != nil {
		return store.FinancialSummary{}, err
	}
	payouts, err := findAll[models.Payout](ctx, s.payouts(), bson.M{"user_id": userID})
	if err != nil {
		return store.FinancialSummary{}, err
	}
	return store.Summarize(userID, orders, payouts, s.settings, time.Now().UTC()), nil
}

// InitiatePayout validates the destination and the amount against the
// current balance, then records a pending payout with a masked bank
// snapshot. On any failure no payout row is written.
func (s *Store) InitiatePayout(ctx context.Context, userID, accountID string, amount float64) (models.Payout, error) {
	account, err := findOne[models.BankAccount](ctx, s.bankAccounts(),
		bson.M{"_id": accountID, "user_id": userID, "is_active": true})
	if err != nil {
		return models.Payout{}, err
	}
	if account == nil {
		return models.Payout{}, store.ErrInvalidAccount
	}

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

	snapshot, err := s.codec.Snapshot(*account)
	if err != nil {
		return models.Payout{}, err
	}
	rec := store.NewPayoutRecord(userID, *account, amount, snapshot, s.settings.ArrivalDays, time.Now().UTC())
	if _, err := s.payouts().InsertOne(ctx, rec); err != nil {
		return models.Payout{}, store.Wrap("insert", colPayouts, err)
	}
	return rec, nil
}

func (s *Store) UpdatePayoutStatus(ctx context.Context, payoutID, status string) (models.Payout, error) {
	return findOneAndUpdate[models.Payout](ctx, s.payouts(),
		bson.M{"_id": payoutID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}})
}

func (s *Store) GetUserPayouts(ctx context.Context, userID string) ([]models.Payout, error) {
	return findAll[models.Payout](ctx, s.payouts(), bson.M{"user_id": userID}, sortNewest())
}
