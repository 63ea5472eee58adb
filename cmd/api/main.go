package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ecoshop/internal/config"
	"ecoshop/internal/db"
	"ecoshop/internal/httpserver"
	"ecoshop/internal/pricing"
	cartrepo "ecoshop/internal/repository/cart"
	categoryrepo "ecoshop/internal/repository/category"
	favoriterepo "ecoshop/internal/repository/favorite"
	orderrepo "ecoshop/internal/repository/order"
	productrepo "ecoshop/internal/repository/product"
	cartsvc "ecoshop/internal/service/cart"
	categorysvc "ecoshop/internal/service/category"
	favoritesvc "ecoshop/internal/service/favorite"
	ordersvc "ecoshop/internal/service/order"
	productsvc "ecoshop/internal/service/product"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger, err := config.NewLogger(cfg.LogFormat, "api")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	productService := productsvc.New(productRepo, logger)
	categoryService := categorysvc.New(categoryrepo.NewPostgres(dbpool))
	cartService := cartsvc.New(cartrepo.NewPostgres(dbpool, logger), logger)
	favoriteService := favoritesvc.New(favoriterepo.NewPostgres(dbpool, logger))
	orderService := ordersvc.New(orderrepo.NewPostgres(dbpool, logger), productRepo, pricing.Policy{
		FlatShippingFee:       cfg.ShippingFlatFee,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		TaxRate:               cfg.TaxRate,
	}, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc:     cartService,
		FavoriteSvc: favoriteService,
		OrderSvc:    orderService,
		ProductSvc:  productService,
		CategorySvc: categoryService,
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
