// internal/app/banking/validate.go
package banking

import (
	"strings"

	"github.com/shuzaifak/crowd/internal/domain/models"
)

// Validate checks a plaintext bank account against its country's schema.
// All missing required fields are reported together in a single
// *MissingFieldsError; only once the required set is complete does the first
// format violation surface as an *InvalidFormatError. Call before encrypting:
// ciphertext never matches a format pattern.
func Validate(a *models.BankAccount) error {
	country := normalizeCountry(a.Country)
	schema := SchemaFor(country)

	var missing []string
	for _, field := range schema.Required {
		if strings.TrimSpace(fieldValue(a, field)) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Country: country, Fields: missing}
	}

	for _, field := range append(append([]string{}, schema.Required...), schema.Optional...) {
		v := strings.TrimSpace(fieldValue(a, field))
		if v == "" {
			continue
		}
		if pat := patternFor(country, field); pat != nil && !pat.MatchString(v) {
			return &InvalidFormatError{Country: country, Field: field}
		}
	}
	return nil
}

func normalizeCountry(country string) string {
	return strings.ToUpper(strings.TrimSpace(country))
}

// fieldValue resolves a schema field name to its value on the account.
func fieldValue(a *models.BankAccount, name string) string {
	switch name {
	case FieldAccountHolderName:
		return a.AccountHolderName
	case FieldAccountNumber:
		return a.AccountNumber
	case FieldRoutingNumber:
		return a.RoutingNumber
	case FieldSortCode:
		return a.SortCode
	case FieldIBAN:
		return a.IBAN
	case FieldIFSCCode:
		return a.IFSCCode
	case FieldBSB:
		return a.BSB
	case FieldBankName:
		return a.BankName
	}
	return ""
}
