// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/stratadesk/internal/app/system/indexes"
	"github.com/dalemusser/stratadesk/internal/app/system/mongoconn"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB builds the process-wide MongoDB provider.
//
// The provider connects on first Acquire. ConnectDB tries once up front so
// the pool is ready, but an unreachable MongoDB only logs a warning: the
// listers answer with empty pages until a later Acquire succeeds.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	provider := mongoconn.NewLazy(appCfg.MongoDatabase, mongoconn.Dial(
		appCfg.MongoURI,
		appCfg.MongoDatabase,
		appCfg.MongoMaxPoolSize,
		appCfg.MongoMinPoolSize,
	))

	if warmProvider(ctx, provider, appCfg.MongoDatabase, logger) {
		logger.Info("connected to MongoDB",
			zap.String("database", appCfg.MongoDatabase),
			zap.Uint64("max_pool_size", appCfg.MongoMaxPoolSize),
			zap.Uint64("min_pool_size", appCfg.MongoMinPoolSize),
		)
	}

	return DBDeps{Mongo: provider}, nil
}

// warmProvider reports whether provider could connect.
func warmProvider(ctx context.Context, provider mongoconn.Provider, database string, logger *zap.Logger) bool {
	if _, err := provider.Acquire(ctx); err != nil {
		logger.Warn("MongoDB unreachable at startup; serving empty listings until it connects",
			zap.String("database", database),
			zap.Error(err))
		return false
	}
	return true
}

// EnsureSchema creates the indexes the listers sort on. The context has a
// timeout based on coreCfg.IndexBootTimeout.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return ensureSchema(ctx, deps.Mongo, logger)
}

// ensureSchema skips index creation when MongoDB is down. The indexes only
// speed up sorting, so they are created on the next start instead.
func ensureSchema(ctx context.Context, provider mongoconn.Provider, logger *zap.Logger) error {
	db, err := provider.Acquire(ctx)
	if err != nil {
		logger.Warn("skipping index creation; MongoDB unreachable", zap.Error(err))
		return nil
	}

	logger.Info("ensuring database indexes")
	if err := indexes.EnsureAll(ctx, db); err != nil {
		logger.Error("failed to ensure indexes", zap.Error(err))
		return err
	}

	logger.Info("database schema ensured successfully")
	return nil
}
