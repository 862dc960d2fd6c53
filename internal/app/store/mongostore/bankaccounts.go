// internal/app/store/mongostore/bankaccounts.go
package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shuzaifak/crowd/internal/app/banking"
	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// GetUserBankAccounts lists a user's active accounts, primary first.
func (s *Store) GetUserBankAccounts(ctx context.Context, userID string) ([]models.BankAccount, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "is_primary", Value: -1},
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	return findAll[models.BankAccount](ctx, s.bankAccounts(),
		bson.M{"user_id": userID, "is_active": true}, opts)
}

// GetBankAccountByID resolves an account; soft-deleted rows read as absent.
func (s *Store) GetBankAccountByID(ctx context.Context, id string) (*models.BankAccount, error) {
	return findOne[models.BankAccount](ctx, s.bankAccounts(), bson.M{"_id": id, "is_active": true})
}

// CreateBankAccount validates the plaintext draft against its country
// schema, encrypts the sensitive fields, and persists the record. A user's
// first active account always becomes primary; a primary insert demotes the
// user's other active accounts first.
func (s *Store) CreateBankAccount(ctx context.Context, draft models.BankAccount) (models.BankAccount, error) {
	if err := banking.Validate(&draft); err != nil {
		return models.BankAccount{}, err
	}
	now := time.Now().UTC()
	rec := store.NewBankAccountRecord(draft, now)
	if err := s.codec.EncryptAccount(&rec); err != nil {
		return models.BankAccount{}, err
	}

	active, err := s.bankAccounts().CountDocuments(ctx,
		bson.M{"user_id": rec.UserID, "is_active": true})
	if err != nil {
		return models.BankAccount{}, store.Wrap("count", colBankAccounts, err)
	}
	if active == 0 {
		rec.IsPrimary = true
	}
	if rec.IsPrimary {
		if err := s.demoteOthers(ctx, rec.UserID, rec.ID, now); err != nil {
			return models.BankAccount{}, err
		}
	}
	if _, err := s.bankAccounts().InsertOne(ctx, rec); err != nil {
		return models.BankAccount{}, store.Wrap("insert", colBankAccounts, err)
	}
	return rec, nil
}

// UpdateBankAccount merges a patch into the decrypted record, re-validates
// the whole account under its country schema, and re-encrypts. Because the
// ciphertext changes wholesale, the write replaces the document rather than
// patching fields. The country itself is fixed at creation.
func (s *Store) UpdateBankAccount(ctx context.Context, id string, patch store.BankAccountPatch) (models.BankAccount, error) {
	current, err := s.GetBankAccountByID(ctx, id)
	if err != nil {
		return models.BankAccount{}, err
	}
	if current == nil {
		return models.BankAccount{}, store.ErrNotFound
	}

	working := *current
	if err := s.codec.DecryptAccount(&working); err != nil {
		return models.BankAccount{}, err
	}
	patch.Apply(&working)
	if err := banking.Validate(&working); err != nil {
		return models.BankAccount{}, err
	}
	if err := s.codec.EncryptAccount(&working); err != nil {
		return models.BankAccount{}, err
	}

	now := time.Now().UTC()
	working.UpdatedAt = now
	res, err := s.bankAccounts().ReplaceOne(ctx, bson.M{"_id": id, "is_active": true}, working)
	if err != nil {
		return models.BankAccount{}, store.Wrap("replace", colBankAccounts, err)
	}
	if res.MatchedCount == 0 {
		return models.BankAccount{}, store.ErrNotFound
	}
	if working.IsPrimary {
		if err := s.demoteOthers(ctx, working.UserID, working.ID, now); err != nil {
			return models.BankAccount{}, err
		}
	}
	return working, nil
}

// DeleteBankAccount soft-deletes; the row stays for payout history.
func (s *Store) DeleteBankAccount(ctx context.Context, id string) error {
	now := time.Now().UTC()
	res, err := s.bankAccounts().UpdateOne(ctx,
		bson.M{"_id": id, "is_active": true},
		bson.M{"$set": bson.M{
			"is_active":  false,
			"is_primary": false,
			"deleted_at": now,
			"updated_at": now,
		}})
	if err != nil {
		return store.Wrap("update", colBankAccounts, err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// SetPrimaryBankAccount promotes one active account and demotes the rest,
// leaving the user with exactly one active primary.
func (s *Store) SetPrimaryBankAccount(ctx context.Context, userID, accountID string) (models.BankAccount, error) {
	now := time.Now().UTC()
	updated, err := findOneAndUpdate[models.BankAccount](ctx, s.bankAccounts(),
		bson.M{"_id": accountID, "user_id": userID, "is_active": true},
		bson.M{"$set": bson.M{"is_primary": true, "updated_at": now}})
	if err != nil {
		return models.BankAccount{}, err
	}
	if err := s.demoteOthers(ctx, userID, accountID, now); err != nil {
		return models.BankAccount{}, err
	}
	return updated, nil
}

// demoteOthers clears the primary flag on every active account of userID
// except keepID.
func (s *Store) demoteOthers(ctx context.Context, userID, keepID string, now time.Time) error {
	_, err := s.bankAccounts().UpdateMany(ctx,
		bson.M{
			"user_id":    userID,
			"is_active":  true,
			"is_primary": true,
			"_id":        bson.M{"$ne": keepID},
		},
		bson.M{"$set": bson.M{"is_primary": false, "updated_at": now}})
	if err != nil {
		return store.Wrap("update", colBankAccounts, err)
	}
	return nil
}
