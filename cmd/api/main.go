package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fakestore-sync/internal/catalog"
	"fakestore-sync/internal/config"
	"fakestore-sync/internal/converter"
	"fakestore-sync/internal/db"
	"fakestore-sync/internal/httpserver"
	"fakestore-sync/internal/messaging"
	productrepo "fakestore-sync/internal/repository/product"
	productsvc "fakestore-sync/internal/service/product"
	syncsvc "fakestore-sync/internal/service/sync"
)

func main() {
	cfg := config.FromEnv()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	conv := converter.New()
	repo := productrepo.NewPostgres(dbpool, logger)
	producer := messaging.NewProducer(redisClient, cfg.OutboundChannel, logger)
	productService := productsvc.New(repo, conv, producer, logger)
	catalogClient := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout, logger)
	syncService := syncsvc.New(catalogClient, repo, conv, logger)
	consumer := messaging.NewConsumer(redisClient, cfg.InboundChannel, productService, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		ProductSvc: productService,
		SyncSvc:    syncService,
	})

	consumerCtx, stopConsumer := context.WithCancel(ctx)
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		if err := consumer.Run(consumerCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("consumer stopped", zap.Error(err))
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	stopConsumer()
	<-consumerDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
