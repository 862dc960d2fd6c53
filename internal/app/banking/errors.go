// internal/app/banking/errors.go
package banking

import (
	"fmt"
	"strings"
)

// MissingFieldsError reports every required bank-detail field absent from a
// submission, so a caller can fix the whole form in one pass.
type MissingFieldsError struct {
	Country string
	Fields  []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required bank fields for %s: %s", e.Country, strings.Join(e.Fields, ", "))
}

// InvalidFormatError reports the first bank-detail field whose value does not
// match the country's format rule.
type InvalidFormatError struct {
	Country string
	Field   string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format for %s (%s)", e.Field, e.Country)
}

// CodecError wraps any failure to encrypt or decrypt a stored bank value.
// Decryption failures are deliberately opaque: the cause distinguishes a
// malformed record from a wrong key only in logs, never in API responses.
type CodecError struct {
	Op  string
	Err error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("banking codec: %s: %v", e.Op, e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }
