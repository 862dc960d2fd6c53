// internal/app/store/filestore/bankaccounts.go
package filestore

import (
	"context"
	"sort"
	"time"

	"github.com/shuzaifak/crowd/internal/app/banking"
	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// GetUserBankAccounts lists a user's active accounts, primary first.
func (s *Store) GetUserBankAccounts(_ context.Context, userID string) ([]models.BankAccount, error) {
	accounts, err := load[models.BankAccount](s, colBankAccounts)
	if err != nil {
		return nil, err
	}
	out := accounts[:0:0]
	for _, a := range accounts {
		if a.UserID == userID && a.IsActive {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].IsPrimary != out[b].IsPrimary {
			return out[a].IsPrimary
		}
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.After(out[b].CreatedAt)
		}
		return out[a].ID > out[b].ID
	})
	return out, nil
}

// GetBankAccountByID resolves an account; soft-deleted rows read as absent.
func (s *Store) GetBankAccountByID(_ context.Context, id string) (*models.BankAccount, error) {
	accounts, err := load[models.BankAccount](s, colBankAccounts)
	if err != nil {
		return nil, err
	}
	i := indexOf(accounts, func(a *models.BankAccount) bool { return a.ID == id && a.IsActive })
	if i < 0 {
		return nil, nil
	}
	return &accounts[i], nil
}

// CreateBankAccount validates the plaintext draft against its country
// schema, encrypts the sensitive fields, and persists the record. A user's
// first active account always becomes primary; a primary insert demotes the
// user's other active accounts in the same write.
func (s *Store) CreateBankAccount(_ context.Context, draft models.BankAccount) (models.BankAccount, error) {
	if err := banking.Validate(&draft); err != nil {
		return models.BankAccount{}, err
	}
	now := time.Now().UTC()
	rec := store.NewBankAccountRecord(draft, now)
	if err := s.codec.EncryptAccount(&rec); err != nil {
		return models.BankAccount{}, err
	}

	accounts, err := load[models.BankAccount](s, colBankAccounts)
	if err != nil {
		return models.BankAccount{}, err
	}
	hasActive := indexOf(accounts, func(a *models.BankAccount) bool {
		return a.UserID == rec.UserID && a.IsActive
	}) >= 0
	if !hasActive {
		rec.IsPrimary = true
	}
	if rec.IsPrimary {
		demoteOthers(accounts, rec.UserID, rec.ID, now)
	}
	accounts = append(accounts, rec)
	if err := save(s, colBankAccounts, accounts); err != nil {
		return models.BankAccount{}, err
	}
	return rec, nil
}

// UpdateBankAccount merges a patch into the decrypted record, re-validates
// the whole account under its country schema, and re-encrypts. The country
// itself is fixed at creation.
func (s *Store) UpdateBankAccount(_ context.Context, id string, patch store.BankAccountPatch) (models.BankAccount, error) {
	accounts, err := load[models.BankAccount](s, colBankAccounts)
	if err != nil {
		return models.BankAccount{}, err
	}
	i := indexOf(accounts, func(a *models.BankAccount) bool { return a.ID == id && a.IsActive })
	if i < 0 {
		return models.BankAccount{}, store.ErrNotFound
	}

	working := accounts[i]
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
	accounts[i] = working
	if working.IsPrimary {
		demoteOthers(accounts, working.UserID, working.ID, now)
	}
	if err := save(s, colBankAccounts, accounts); err != nil {
		return models.BankAccount{}, err
	}
	return accounts[i], nil
}

// DeleteBankAccount soft-deletes; the row stays for payout history.
func (s *Store) DeleteBankAccount(_ context.Context, id string) error {
	accounts, err := load[models.BankAccount](s, colBankAccounts)
	if err != nil {
		return err
	}
	i := indexOf(accounts, func(a *models.BankAccount) bool { return a.ID == id && a.IsActive })
	if i < 0 {
		return store.ErrNotFound
	}
	now := time.Now().UTC()
	accounts[i].IsActive = false
	accounts[i].IsPrimary = false
	accounts[i].DeletedAt = &now
	accounts[i].UpdatedAt = now
	return save(s, colBankAccounts, accounts)
}

// SetPrimaryBankAccount promotes one active account and demotes the rest,
// leaving the user with exactly one active primary.
func (s *Store) SetPrimaryBankAccount(_ context.Context, userID, accountID string) (models.BankAccount, error) {
	accounts, err := load[models.BankAccount](s, colBankAccounts)
	if err != nil {
		return models.BankAccount{}, err
	}
	i := indexOf(accounts, func(a *models.BankAccount) bool {
		return a.ID == accountID && a.UserID == userID && a.IsActive
	})
	if i < 0 {
		return models.BankAccount{}, store.ErrNotFound
	}
	now := time.Now().UTC()
	if !accounts[i].IsPrimary {
		accounts[i].IsPrimary = true
		accounts[i].UpdatedAt = now
	}
	demoteOthers(accounts, userID, accountID, now)
	if err := save(s, colBankAccounts, accounts); err != nil {
		return models.BankAccount{}, err
	}
	return accounts[i], nil
}

// demoteOthers clears the primary flag on every active account of userID
// except keepID.
func demoteOthers(accounts []models.BankAccount, userID, keepID string, now time.Time) {
	for i := range accounts {
		a := &accounts[i]
		if a.UserID != userID || a.ID == keepID || !a.IsActive || !a.IsPrimary {
			continue
		}
		a.IsPrimary = false
		a.UpdatedAt = now
	}
}
