// internal/app/banking/schema.go
package banking

import "regexp"

// Field names used by the per-country schemas. They match the bank-account
// model's bson/json keys so validation errors read the same as API payloads.
const (
	FieldAccountHolderName = "account_holder_name"
	FieldAccountNumber     = "account_number"
	FieldRoutingNumber     = "routing_number"
	FieldSortCode          = "sort_code"
	FieldIBAN              = "iban"
	FieldIFSCCode          = "ifsc_code"
	FieldBSB               = "bsb"
	FieldBankName          = "bank_name"
)

// DefaultCountry is the registry key for the fallback schema applied to
// countries without an explicit entry.
const DefaultCountry = "DEFAULT"

// Schema lists which bank-detail fields a country requires and which it
// merely accepts.
type Schema struct {
	Required []string
	Optional []string
}

// countrySchemas maps ISO 3166-1 alpha-2 codes to their field schema.
var countrySchemas = map[string]Schema{
	"US": {
		Required: []string{FieldAccountHolderName, FieldAccountNumber, FieldRoutingNumber},
		Optional: []string{FieldBankName},
	},
	"CA": {
		Required: []string{FieldAccountHolderName, FieldAccountNumber, FieldRoutingNumber},
		Optional: []string{FieldBankName},
	},
	"GB": {
		Required: []string{FieldAccountHolderName, FieldAccountNumber, FieldSortCode},
		Optional: []string{FieldBankName, FieldIBAN},
	},
	"IN": {
		Required: []string{FieldAccountHolderName, FieldAccountNumber, FieldIFSCCode},
		Optional: []string{FieldBankName},
	},
	"AU": {
		Required: []string{FieldAccountHolderName, FieldAccountNumber, FieldBSB},
		Optional: []string{FieldBankName},
	},
	"DE": {
		Required: []string{FieldAccountHolderName, FieldIBAN},
		Optional: []string{FieldBankName},
	},
	"FR": {
		Required: []string{FieldAccountHolderName, FieldIBAN},
		Optional: []string{FieldBankName},
	},
	DefaultCountry: {
		Required: []string{FieldAccountHolderName, FieldAccountNumber},
		Optional: []string{FieldBankName, FieldIBAN},
	},
}

// fieldPatterns holds per-country format checks for fields that have one.
// Patterns are checked only when the field is present; required-field gaps
// are reported separately (and all together) by Validate.
var fieldPatterns = map[string]map[string]*regexp.Regexp{
	"US": {
		FieldRoutingNumber: regexp.MustCompile(`^\d{9}$`),
		FieldAccountNumber: regexp.MustCompile(`^\d{4,17}$`),
	},
	"CA": {
		FieldRoutingNumber: regexp.MustCompile(`^\d{9}$`),
		FieldAccountNumber: regexp.MustCompile(`^\d{7,12}$`),
	},
	"GB": {
		FieldSortCode:      regexp.MustCompile(`^\d{2}-\d{2}-\d{2}$`),
		FieldAccountNumber: regexp.MustCompile(`^\d{8}$`),
		FieldIBAN:          regexp.MustCompile(`^GB\d{2}[A-Z]{4}\d{14}$`),
	},
	"IN": {
		FieldIFSCCode:      regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`),
		FieldAccountNumber: regexp.MustCompile(`^\d{9,18}$`),
	},
	"AU": {
		FieldBSB:           regexp.MustCompile(`^\d{3}-?\d{3}$`),
		FieldAccountNumber: regexp.MustCompile(`^\d{6,10}$`),
	},
	"DE": {
		FieldIBAN: regexp.MustCompile(`^DE\d{20}$`),
	},
	"FR": {
		FieldIBAN: regexp.MustCompile(`^FR\d{12}[A-Z0-9]{11}\d{2}$`),
	},
}

// SchemaFor returns the field schema for a country code, falling back to the
// DEFAULT schema for countries without a registered entry.
func SchemaFor(country string) Schema {
	if s, ok := countrySchemas[normalizeCountry(country)]; ok {
		return s
	}
	return countrySchemas[DefaultCountry]
}

// Countries returns the explicitly registered country codes (excluding the
// DEFAULT fallback), in no particular order.
func Countries() []string {
	out := make([]string, 0, len(countrySchemas)-1)
	for code := range countrySchemas {
		if code == DefaultCountry {
			continue
		}
		out = append(out, code)
	}
	return out
}

// patternFor returns the format pattern registered for (country, field), or
// nil when the field has no format check in that country.
func patternFor(country, field string) *regexp.Regexp {
	pats, ok := fieldPatterns[normalizeCountry(country)]
	if !ok {
		return nil
	}
	return pats[field]
}
