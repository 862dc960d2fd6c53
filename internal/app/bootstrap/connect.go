// internal/app/bootstrap/connect.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/shuzaifak/crowd/internal/app/banking"
	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/app/store/filestore"
	"github.com/shuzaifak/crowd/internal/app/store/mongostore"
)

// ConnectDB builds the store behind the shared contract. The backend enum
// from configuration decides which implementation is constructed; everything
// downstream of here sees store.Store and cannot tell the two apart.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	backend, err := store.ParseBackend(appCfg.StoreBackend)
	if err != nil {
		return DBDeps{}, err
	}

	codec, err := banking.NewCodec(appCfg.BankingKey)
	if err != nil {
		return DBDeps{}, fmt.Errorf("banking codec: %w", err)
	}

	settings, err := payoutSettings(appCfg)
	if err != nil {
		return DBDeps{}, err
	}

	switch backend {
	case store.BackendFile:
		s, err := filestore.New(appCfg.FileDataDir, codec, settings)
		if err != nil {
			return DBDeps{}, fmt.Errorf("open file store: %w", err)
		}
		logger.Info("file store ready", zap.String("dir", appCfg.FileDataDir))
		return DBDeps{Store: s, Backend: backend, Codec: codec}, nil

	case store.BackendMongo:
		opts := options.Client().
			ApplyURI(appCfg.MongoURI).
			SetMaxPoolSize(appCfg.MongoMaxPoolSize).
			SetMinPoolSize(appCfg.MongoMinPoolSize)
		client, err := mongo.Connect(ctx, opts)
		if err != nil {
			return DBDeps{}, fmt.Errorf("connect to MongoDB: %w", err)
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(ctx)
			return DBDeps{}, fmt.Errorf("ping MongoDB: %w", err)
		}

		db := client.Database(appCfg.MongoDatabase)
		s, err := mongostore.New(db, codec, settings)
		if err != nil {
			_ = client.Disconnect(ctx)
			return DBDeps{}, err
		}
		logger.Info("mongo store ready", zap.String("database", appCfg.MongoDatabase))
		return DBDeps{
			Store:         s,
			Backend:       backend,
			Codec:         codec,
			MongoStore:    s,
			MongoDatabase: db,
		}, nil
	}

	return DBDeps{}, &store.UnknownBackendError{Value: appCfg.StoreBackend}
}

// payoutSettings maps the payout configuration onto the store's policy
// struct. ValidateConfig has already rejected non-positive values.
func payoutSettings(appCfg AppConfig) (store.Settings, error) {
	weekday, err := parseWeekday(appCfg.PayoutWeekday)
	if err != nil {
		return store.Settings{}, fmt.Errorf("payout_weekday: %w", err)
	}
	return store.Settings{
		MinimumPayout: appCfg.PayoutMinimum,
		PayoutWeekday: weekday,
		ArrivalDays:   appCfg.PayoutArrivalDays,
	}, nil
}
