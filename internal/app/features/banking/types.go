package banking

import (
	"github.com/shuzaifak/crowd/internal/app/system/normalize"
)

var accountTypes = map[string]bool{
	"checking": true,
	"savings":  true,
}

type createAccountRequest struct {
	Country           string `json:"country" validate:"required" label:"Country"`
	BankName          string `json:"bank_name" validate:"required,max=200" label:"Bank name"`
	AccountHolderName string `json:"account_holder_name" validate:"required,max=200" label:"Account holder name"`
	AccountType       string `json:"account_type"`
	Currency          string `json:"currency"`
	AccountNumber     string `json:"account_number"`
	RoutingNumber     string `json:"routing_number"`
	SortCode          string `json:"sort_code"`
	IBAN              string `json:"iban"`
	IFSCCode          string `json:"ifsc_code"`
	BSB               string `json:"bsb"`
	IsPrimary         bool   `json:"is_primary"`
}

// check covers the enum and shape rules; which detail fields a country
// requires is the codec's call, not ours.
func (req createAccountRequest) check() (msg, field string, ok bool) {
	if !isCountryCode(normalize.Country(req.Country)) {
		return "Country must be a two-letter code.", "country", false
	}
	if t := normalize.Status(req.AccountType); t != "" && !accountTypes[t] {
		return "Account type must be one of: checking, savings.", "account_type", false
	}
	if c := normalize.Currency(req.Currency); c != "" && !isCurrencyCode(c) {
		return "Currency must be a three-letter code.", "currency", false
	}
	return "", "", true
}

type updateAccountRequest struct {
	BankName          *string `json:"bank_name"`
	AccountHolderName *string `json:"account_holder_name"`
	AccountType       *string `json:"account_type"`
	Currency          *string `json:"currency"`
	AccountNumber     *string `json:"account_number"`
	RoutingNumber     *string `json:"routing_number"`
	SortCode          *string `json:"sort_code"`
	IBAN              *string `json:"iban"`
	IFSCCode          *string `json:"ifsc_code"`
	BSB               *string `json:"bsb"`
	IsPrimary         *bool   `json:"is_primary"`
}

func (req updateAccountRequest) check() (msg, field string, ok bool) {
	if req.BankName != nil && normalize.Name(*req.BankName) == "" {
		return "Bank name is required.", "bank_name", false
	}
	if req.AccountHolderName != nil && normalize.Name(*req.AccountHolderName) == "" {
		return "Account holder name is required.", "account_holder_name", false
	}
	if req.AccountType != nil {
		if t := normalize.Status(*req.AccountType); t != "" && !accountTypes[t] {
			return "Account type must be one of: checking, savings.", "account_type", false
		}
	}
	if req.Currency != nil {
		if c := normalize.Currency(*req.Currency); c != "" && !isCurrencyCode(c) {
			return "Currency must be a three-letter code.", "currency", false
		}
	}
	return "", "", true
}

func isCountryCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	return isUpperASCII(s)
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	return isUpperASCII(s)
}

// isUpperASCII reports whether s is entirely uppercase ASCII letters. Folding
// happens before the check, so mixed case never arrives here.
func isUpperASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
