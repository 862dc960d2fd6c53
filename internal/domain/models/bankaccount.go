// internal/domain/models/bankaccount.go
package models

import "time"

// BankAccount is a payout destination. Which of the bank-detail fields are
// required depends on the account's country (see banking.Schema). The
// sensitive fields (AccountNumber, RoutingNumber, SortCode, IBAN, IFSCCode,
// BSB) are encrypted by the banking codec before a record is persisted and
// are stored as "nonce:ciphertext" strings, never plaintext.
//
// At most one account per user may be active and primary at the same time;
// the stores demote siblings whenever a record is created or updated with
// IsPrimary=true. Deletion is a soft delete (IsActive=false + DeletedAt).
type BankAccount struct {
	ID     string `bson:"_id" json:"id"`
	UserID string `bson:"user_id" json:"user_id"`

	Country           string `bson:"country" json:"country"` // ISO 3166-1 alpha-2
	BankName          string `bson:"bank_name" json:"bank_name"`
	AccountHolderName string `bson:"account_holder_name" json:"account_holder_name"`
	AccountType       string `bson:"account_type,omitempty" json:"account_type,omitempty"` // checking | savings
	Currency          string `bson:"currency,omitempty" json:"currency,omitempty"`

	// Encrypted at rest.
	AccountNumber string `bson:"account_number,omitempty" json:"account_number,omitempty"`
	RoutingNumber string `bson:"routing_number,omitempty" json:"routing_number,omitempty"`
	SortCode      string `bson:"sort_code,omitempty" json:"sort_code,omitempty"`
	IBAN          string `bson:"iban,omitempty" json:"iban,omitempty"`
	IFSCCode      string `bson:"ifsc_code,omitempty" json:"ifsc_code,omitempty"`
	BSB           string `bson:"bsb,omitempty" json:"bsb,omitempty"`

	IsPrimary bool `bson:"is_primary" json:"is_primary"`
	IsActive  bool `bson:"is_active" json:"is_active"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}
