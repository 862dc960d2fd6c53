// Package normalize canonicalizes user-supplied strings before they reach
// the store, so lookups and comparisons never depend on how a caller typed a
// value.
package normalize

import "strings"

// Email lowercases and trims an email address. Emails are compared
// case-insensitively everywhere, so they are stored folded.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace. Display names keep their case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role name (user, organizer, admin).
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims a lifecycle status (draft, published, pending, ...).
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Platform lowercases and trims a social platform name (instagram, facebook, ...).
func Platform(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Currency uppercases and trims an ISO currency code (USD, EUR, ...).
func Currency(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Country uppercases and trims an ISO 3166-1 alpha-2 country code (US, GB, ...).
func Country(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// QueryParam trims a free-text query parameter. Case is preserved; matching
// decides its own sensitivity.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
