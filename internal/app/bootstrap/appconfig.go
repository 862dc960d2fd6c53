// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS ports,
// TLS, logging level and format, and request body size limits. AppConfig is
// where everything specific to this application lives: which store backend to
// run, how to reach it, the token and banking secrets, and the payout policy.
type AppConfig struct {
	// Store backend selection
	StoreBackend string // storage backend: "file" or "mongo"
	FileDataDir  string // data directory for the file backend

	// MongoDB connection configuration (mongo backend only)
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // database name within MongoDB
	MongoMaxPoolSize uint64 // max connection pool size
	MongoMinPoolSize uint64 // min connection pool size

	// Bearer-token configuration
	TokenSecret string        // HS256 signing key (must be strong in production)
	TokenIssuer string        // issuer claim stamped into tokens
	TokenTTL    time.Duration // token lifetime

	// Brute-force shield on the credential endpoints
	AuthRateLimit  int           // attempts allowed per client IP per window; 0 disables
	AuthRateWindow time.Duration // window the attempt count applies to

	// Banking field encryption
	BankingKey string // secret the banking codec derives its AES key from

	// Payout policy
	PayoutMinimum     float64 // smallest payout amount accepted
	PayoutWeekday     string  // weekly payout day, e.g. "Friday"
	PayoutArrivalDays int     // days until an initiated payout is estimated to arrive

	// CORS
	CORSAllowedOrigins string // comma-separated origin list; "*" allows any
}
