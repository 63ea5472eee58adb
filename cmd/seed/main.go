package main

import (
	"context"
	"log"

	"ecoshop/internal/config"
	"ecoshop/internal/db"
	"ecoshop/internal/seed"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger, err := config.NewLogger(cfg.LogFormat, "seed")
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

	if err := seed.Apply(ctx, pool, logger); err != nil {
		logger.Fatal("seed apply", zap.Error(err))
	}
}
