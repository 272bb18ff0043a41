package main

import (
	"context"
	"net/http"
	"os"

	webAdapter "supply-console/internal/adapters/web"
	"supply-console/internal/app"
	"supply-console/internal/core"
	"supply-console/internal/db"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	catalog := core.NewCatalogService(pool)
	discounts := core.NewDiscountConfigService(pool)
	slabs := core.NewPriceSlabService(pool)

	svc := app.NewAppService(catalog, discounts, slabs)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, logger, allowedOrigins)

	logger.Info("server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
