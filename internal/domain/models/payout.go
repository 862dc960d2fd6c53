// internal/domain/models/payout.go
package models

import "time"

// Status values for Payout.Status.
const (
	PayoutPending    = "pending"
	PayoutProcessing = "processing"
	PayoutCompleted  = "completed"
	PayoutFailed     = "failed"
	PayoutCancelled  = "cancelled"
)

// Payout is a withdrawal of earned balance to a bank account. Payouts are
// created only by the payout-initiation operation after a balance check.
// BankSnapshot captures masked destination details at initiation time so the
// payout history stays meaningful if the account is later edited or deleted.
type Payout struct {
	ID            string  `bson:"_id" json:"id"`
	UserID        string  `bson:"user_id" json:"user_id"`
	BankAccountID string  `bson:"bank_account_id" json:"bank_account_id"`
	Amount        float64 `bson:"amount" json:"amount"`
	Currency      string  `bson:"currency" json:"currency"`
	Status        string  `bson:"status" json:"status"` // pending | processing | completed | failed | cancelled

	BankSnapshot BankSnapshot `bson:"bank_snapshot" json:"bank_snapshot"`

	EstimatedArrival time.Time `bson:"estimated_arrival" json:"estimated_arrival"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}

// BankSnapshot is the masked view of a payout's destination account. It never
// holds a full account number.
type BankSnapshot struct {
	BankName      string `bson:"bank_name" json:"bank_name"`
	Country       string `bson:"country" json:"country"`
	AccountNumber string `bson:"account_number" json:"account_number"` // masked, e.g. "*****6789"
}
