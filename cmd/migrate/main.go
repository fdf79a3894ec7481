package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"fakestore-sync/internal/config"
	"fakestore-sync/internal/db"
	"fakestore-sync/internal/migrate"
)

func main() {
	cfg := config.FromEnv()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	logger.Info("migrations applied")
}
