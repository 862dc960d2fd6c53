// Package inputval validates user-supplied request fields. Validate drives
// struct-tag rules for whole request bodies; the IsValid* helpers serve
// one-off checks.
package inputval

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// allowedPlatforms are the social platforms posts and ad campaigns may
// target, in display order.
var allowedPlatforms = []string{"instagram", "facebook", "twitter", "tiktok", "youtube", "linkedin"}

// IsValidEmail reports whether s is a well-formed email address (RFC 5322
// addr-spec). Display-name forms like "Name <a@b.com>" are rejected; the
// value must be the bare address.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

// IsValidPlatform reports whether s names a supported social platform.
// Matching is case-insensitive and ignores surrounding whitespace.
func IsValidPlatform(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range allowedPlatforms {
		if s == p {
			return true
		}
	}
	return false
}

// AllowedPlatformsList returns the supported platforms in display order.
func AllowedPlatformsList() []string {
	out := make([]string, len(allowedPlatforms))
	copy(out, allowedPlatforms)
	return out
}

// IsValidHTTPURL reports whether s is an absolute http or https URL.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// IsValidUUID reports whether s is a canonical 36-character UUID string.
// Braced, URN and compact-hex forms are rejected; record ids are always
// stored canonical.
func IsValidUUID(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// FieldError is one failed rule on one struct field.
type FieldError struct {
	Field   string
	Message string
}

// Result collects the failures from one Validate call.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first failure message, or "" when validation passed.
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every failure message with "; ".
func (r *Result) All() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Fields lists the failing field names, for error envelopes.
func (r *Result) Fields() []string {
	if len(r.Errors) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Field)
	}
	return out
}

// Validate applies the validate tags on input's string fields. Rules are
// comma-separated: required, min=N, max=N, email, platform, httpurl, uuid.
// Format rules pass on an empty value so optional fields stay optional;
// combine them with required when the value must be present. The label tag
// supplies the human name used in messages; field names in the result come
// from the json tag when one is set.
//
// Values are trimmed before checking, matching what normalize does before
// the store sees them. Non-string and unexported fields are skipped; a field
// reports at most one failure per call.
func Validate(input any) *Result {
	res := &Result{}
	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return res
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return res
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("validate")
		if tag == "" {
			continue
		}
		fv := v.Field(i)
		if fv.Kind() != reflect.String {
			continue
		}
		value := strings.TrimSpace(fv.String())
		label := f.Tag.Get("label")
		if label == "" {
			label = f.Name
		}
		for _, rule := range strings.Split(tag, ",") {
			if msg := applyRule(rule, value, label); msg != "" {
				res.Errors = append(res.Errors, FieldError{Field: fieldName(f), Message: msg})
				break
			}
		}
	}
	return res
}

// fieldName prefers the json tag name so validation errors match the wire
// names clients sent.
func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" {
		return f.Name
	}
	return tag
}

// applyRule returns "" when value satisfies rule, or the message to show.
// Unknown rules and malformed bounds are skipped rather than failed.
func applyRule(rule, value, label string) string {
	switch {
	case rule == "required":
		if value == "" {
			return label + " is required."
		}
	case strings.HasPrefix(rule, "min="):
		n, err := strconv.Atoi(strings.TrimPrefix(rule, "min="))
		if err != nil || value == "" {
			return ""
		}
		if utf8.RuneCountInString(value) < n {
			return fmt.Sprintf("%s must be at least %d characters.", label, n)
		}
	case strings.HasPrefix(rule, "max="):
		n, err := strconv.Atoi(strings.TrimPrefix(rule, "max="))
		if err != nil {
			return ""
		}
		if utf8.RuneCountInString(value) > n {
			return fmt.Sprintf("%s must be at most %d characters.", label, n)
		}
	case rule == "email":
		if value != "" && !IsValidEmail(value) {
			return "A valid email address is required."
		}
	case rule == "platform":
		if value != "" && !IsValidPlatform(value) {
			return label + " must be one of: " + strings.Join(allowedPlatforms, ", ") + "."
		}
	case rule == "httpurl":
		if value != "" && !IsValidHTTPURL(value) {
			return label + " must be an http or https URL."
		}
	case rule == "uuid":
		if value != "" && !IsValidUUID(value) {
			return label + " must be a valid id."
		}
	}
	return ""
}
