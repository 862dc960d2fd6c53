// Package htmlsanitize strips dangerous markup from user-supplied rich text.
// Event descriptions and campaign content accept a limited HTML vocabulary;
// scripts, frames, forms and inline event handlers are removed before the
// value is stored.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// policy is built once; a bluemonday policy is safe for concurrent use.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// Rich-text editors emit class/style on table markup. Allow those on
	// table elements only; everywhere else they stay forbidden.
	p.AllowAttrs("class", "style").OnElements(
		"table", "thead", "tbody", "tfoot", "tr", "th", "td")

	return p
}

// Sanitize returns s with everything outside the allowed vocabulary removed.
// Safe formatting (headings, lists, tables, links, images, code blocks) is
// preserved. Links come back with rel="nofollow".
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
