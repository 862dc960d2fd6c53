// internal/app/system/limits/limits.go
package limits

// Request body size limits. These keep a single oversized request from
// tying up memory before the handler even looks at it.
const (
	// MaxJSONBody caps JSON request bodies across the API. Event
	// descriptions and campaign copy are the largest legitimate payloads
	// and sit far below this.
	MaxJSONBody = 1 << 20 // 1 MB
)
