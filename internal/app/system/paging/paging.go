// internal/app/system/paging/paging.go
//
// Offset/limit paging for sorted listings. A Window is parsed from request
// query parameters and applied either in-process (the filestore slices the
// full result) or server-side (the mongostore maps it onto Skip/Limit).
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// Window is the slice of a sorted listing a caller wants. The zero Window
// means everything: Offset 0 starts at the beginning and Limit 0 puts no cap
// on the page size.
type Window struct {
	Offset int
	Limit  int
}

// FromRequest reads the "offset" and "limit" query parameters. Unparseable or
// negative values fall back to zero rather than failing the request; paging
// parameters are a convenience, not input worth rejecting a listing over.
func FromRequest(r *http.Request) Window {
	return Window{
		Offset: intParam(query.Get(r, "offset")),
		Limit:  intParam(query.Get(r, "limit")),
	}
}

// Slice applies a window to an already sorted result. Out-of-range offsets
// yield an empty page, never an error.
func Slice[T any](records []T, w Window) []T {
	offset := w.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(records) {
		return []T{}
	}
	records = records[offset:]
	if w.Limit > 0 && w.Limit < len(records) {
		records = records[:w.Limit]
	}
	return records
}

func intParam(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
