// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"

	"github.com/shuzaifak/crowd/internal/app/store"
)

// devTokenSecret and devBankingKey are the out-of-the-box secrets for local
// development. ValidateConfig refuses to start a production process on them.
const (
	devTokenSecret = "dev-only-change-me-please-0123456789ABCDEF"
	devBankingKey  = "dev-only-banking-key-0123456789ABCDEF"
)

// appConfigKeys defines the configuration keys for crowd.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: store_backend, mongo_uri, etc.
//   - Environment variables: CROWD_STORE_BACKEND, CROWD_MONGO_URI, etc.
//   - Command-line flags: --store_backend, --mongo_uri, etc.
var appConfigKeys = []config.AppKey{
	// Store backend selection
	{Name: "store_backend", Default: "file", Desc: "Storage backend: 'file' or 'mongo'"},
	{Name: "file_data_dir", Default: "./data", Desc: "Data directory for the file backend"},

	// MongoDB connection (mongo backend only)
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "crowd", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Bearer tokens
	{Name: "token_secret", Default: devTokenSecret, Desc: "Bearer-token signing key (must be strong in production)"},
	{Name: "token_issuer", Default: "crowd", Desc: "Issuer claim stamped into bearer tokens"},
	{Name: "token_ttl", Default: "24h", Desc: "Bearer-token lifetime (e.g., 24h, 30m)"},

	// Credential-endpoint rate limiting
	{Name: "auth_rate_limit", Default: 20, Desc: "Signup/login attempts allowed per client IP per window (0 disables)"},
	{Name: "auth_rate_window", Default: "1m", Desc: "Window the signup/login attempt limit applies to"},

	// Banking field encryption
	{Name: "banking_key", Default: devBankingKey, Desc: "Secret the banking codec derives its encryption key from (must be strong in production)"},

	// Payout policy
	{Name: "payout_minimum", Default: 25, Desc: "Smallest payout amount accepted"},
	{Name: "payout_weekday", Default: "Friday", Desc: "Weekly payout day reported by the financial summary"},
	{Name: "payout_arrival_days", Default: 3, Desc: "Days until an initiated payout is estimated to arrive"},

	// CORS
	{Name: "cors_allowed_origins", Default: "*", Desc: "Comma-separated list of allowed CORS origins"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have access
// to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, CROWD_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CROWD", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		StoreBackend: appValues.String("store_backend"),
		FileDataDir:  appValues.String("file_data_dir"),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TokenSecret: appValues.String("token_secret"),
		TokenIssuer: appValues.String("token_issuer"),
		TokenTTL:    appValues.Duration("token_ttl", 24*time.Hour),

		AuthRateLimit:  appValues.Int("auth_rate_limit"),
		AuthRateWindow: appValues.Duration("auth_rate_window", time.Minute),

		BankingKey: appValues.String("banking_key"),

		PayoutMinimum:     float64(appValues.Int("payout_minimum")),
		PayoutWeekday:     appValues.String("payout_weekday"),
		PayoutArrivalDays: appValues.Int("payout_arrival_days"),

		CORSAllowedOrigins: appValues.String("cors_allowed_origins"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup. This
// is the right place to enforce required fields or invariants that involve
// both the core and app configs.
//
// crowd validates the backend selection, the selected backend's connection
// settings, the payout policy, and (in production) that the shipped dev
// secrets have been replaced.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	backend, err := store.ParseBackend(appCfg.StoreBackend)
	if err != nil {
		logger.Error("invalid store backend", zap.String("store_backend", appCfg.StoreBackend))
		return err
	}

	switch backend {
	case store.BackendFile:
		if strings.TrimSpace(appCfg.FileDataDir) == "" {
			return fmt.Errorf("file backend requires file_data_dir to be set")
		}
	case store.BackendMongo:
		if appCfg.MongoURI == "" {
			return fmt.Errorf("mongo backend requires mongo_uri to be set")
		}
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	}

	if appCfg.TokenSecret == "" {
		return fmt.Errorf("token_secret must be set")
	}
	if appCfg.BankingKey == "" {
		return fmt.Errorf("banking_key must be set")
	}
	if coreCfg.Env == "prod" {
		if appCfg.TokenSecret == devTokenSecret {
			return fmt.Errorf("token_secret still holds the development default; set a real secret in production")
		}
		if appCfg.BankingKey == devBankingKey {
			return fmt.Errorf("banking_key still holds the development default; set a real secret in production")
		}
	}

	if appCfg.AuthRateLimit < 0 {
		return fmt.Errorf("auth_rate_limit must not be negative, got %d", appCfg.AuthRateLimit)
	}
	if appCfg.AuthRateLimit > 0 && appCfg.AuthRateWindow <= 0 {
		return fmt.Errorf("auth_rate_window must be positive when auth_rate_limit is set, got %v", appCfg.AuthRateWindow)
	}

	if appCfg.PayoutMinimum <= 0 {
		return fmt.Errorf("payout_minimum must be positive, got %v", appCfg.PayoutMinimum)
	}
	if appCfg.PayoutArrivalDays <= 0 {
		return fmt.Errorf("payout_arrival_days must be positive, got %d", appCfg.PayoutArrivalDays)
	}
	if _, err := parseWeekday(appCfg.PayoutWeekday); err != nil {
		return fmt.Errorf("payout_weekday: %w", err)
	}

	return nil
}

// parseWeekday maps a weekday name to its time.Weekday, ignoring letter case.
func parseWeekday(s string) (time.Weekday, error) {
	name := strings.TrimSpace(s)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(name, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
