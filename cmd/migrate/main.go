package main

import (
	"context"
	"log"

	"ecoshop/internal/config"
	"ecoshop/internal/db"
	"ecoshop/internal/migrate"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger, err := config.NewLogger(cfg.LogFormat, "migrate")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	version, dirty, err := migrate.Version(ctx, pool)
	if err != nil {
		logger.Fatal("read schema version", zap.Error(err))
	}
	logger.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
}
