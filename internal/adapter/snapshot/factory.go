package snapshot

import (
	"context"
	"fmt"

	"quiz-hub/internal/cache"
	"quiz-hub/internal/config"
	"quiz-hub/internal/database"
	"quiz-hub/internal/domain"

	"go.uber.org/zap"
)

// NewPersister builds the snapshot backend named by cfg.Type.
func NewPersister(ctx context.Context, logger *zap.Logger, cfg config.StorageConfig) (domain.SnapshotPersister, error) {
	logger.Info("Initializing snapshot storage", zap.String("type", cfg.Type), zap.String("key", cfg.Key))
	if cfg.Type == "multi" {
		backends := make([]domain.SnapshotPersister, 0, len(cfg.Multi))
		for _, t := range cfg.Multi {
			b, err := newBackend(ctx, logger, t, cfg)
			if err != nil {
				for _, opened := range backends {
					_ = opened.Close()
				}
				return nil, err
			}
			backends = append(backends, b)
		}
		return NewMultiPersister(logger, backends...), nil
	}
	return newBackend(ctx, logger, cfg.Type, cfg)
}

func newBackend(ctx context.Context, logger *zap.Logger, kind string, cfg config.StorageConfig) (domain.SnapshotPersister, error) {
	switch kind {
	case "memory":
		return NewMemoryPersister(), nil
	case "file":
		return NewFilePersister(logger, cfg.File.Dir, cfg.Key)
	case "redis":
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisPersister(logger, client, cfg.Key), nil
	case "sql":
		db, err := database.NewSQLXDB(cfg.SQL.Driver, cfg.SQL.DSN)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureSnapshotTable(ctx, db, cfg.SQL.Driver, cfg.SQL.Table); err != nil {
			db.Close()
			return nil, err
		}
		p, err := NewSQLPersister(logger, db, cfg.SQL.Table, cfg.Key)
		if err != nil {
			db.Close()
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported snapshot storage type: %s", kind)
	}
}
