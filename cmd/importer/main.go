package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"ecoshop/internal/config"
	"ecoshop/internal/db"
	"ecoshop/internal/importer"
	"ecoshop/internal/repository/category"
	"ecoshop/internal/repository/product"
	categorysvc "ecoshop/internal/service/category"
	"go.uber.org/zap"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a product (name,price,category,image,description) or category (name,slug) CSV")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	logger, err := config.NewLogger(cfg.LogFormat, "importer")
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

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal("open file", zap.Error(err))
	}
	defer f.Close()

	kind, err := importer.DetectKind(f)
	if err != nil {
		logger.Fatal("detect file kind", zap.Error(err))
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		logger.Fatal("rewind file", zap.Error(err))
	}

	categories := categorysvc.New(category.NewPostgres(pool))
	imp := importer.NewCSVImporter(f, product.NewPostgres(pool, logger), categories, logger)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal("import failed", zap.Int("imported", count), zap.Error(err))
	}

	fmt.Printf("Imported %d %s in %s\n", count, kind, time.Since(start).Truncate(time.Millisecond))
}
