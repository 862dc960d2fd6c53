// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/app/system/indexes"
	"github.com/shuzaifak/crowd/internal/app/system/timeouts"
	"github.com/shuzaifak/crowd/internal/app/system/validators"
)

// EnsureSchema prepares the selected backend for use. The file backend needs
// nothing up front: collection files are created lazily and the app catalog
// is seeded on first read. The mongo backend gets its indexes, collection
// validators, and catalog seed here, before the first request arrives.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Backend != store.BackendMongo {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Batch())
	defer cancel()

	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("index setup failed", zap.Error(err))
		return err
	}
	if err := validators.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("collection validator setup failed", zap.Error(err))
		return err
	}
	if err := deps.MongoStore.SeedCatalog(ctx); err != nil {
		logger.Error("app catalog seed failed", zap.Error(err))
		return err
	}
	return nil
}
