package main

import (
	"context"
	"log"

	"quiz-hub/internal/config"
	"quiz-hub/internal/database"
	"quiz-hub/internal/logger"

	"go.uber.org/zap"
)

// migrate creates the snapshot table for the sql storage backend ahead of
// the first server start, for deployments where the API user lacks DDL
// rights.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer l.Sync()

	sqlCfg := cfg.Storage.SQL
	// DB connection
	db, err := database.NewSQLXDB(sqlCfg.Driver, sqlCfg.DSN)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.String("driver", sqlCfg.Driver), zap.Error(err))
	}
	defer db.Close()

	if err := database.EnsureSnapshotTable(context.Background(), db, sqlCfg.Driver, sqlCfg.Table); err != nil {
		l.Fatal("Failed to create snapshot table", zap.String("table", sqlCfg.Table), zap.Error(err))
	}
	l.Info("Snapshot table ready", zap.String("driver", sqlCfg.Driver), zap.String("table", sqlCfg.Table))
}
