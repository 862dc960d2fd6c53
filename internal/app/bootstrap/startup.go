// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/shuzaifak/crowd/internal/app/system/timeouts"
)

// Startup runs one-time application initialization after the store is
// connected and its schema ensured, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("handler timeouts overridden from environment", zap.Int("count", n))
	}

	logger.Info("store ready",
		zap.String("backend", string(deps.Backend)),
		zap.Float64("payout_minimum", appCfg.PayoutMinimum),
		zap.String("payout_weekday", appCfg.PayoutWeekday))
	return nil
}
