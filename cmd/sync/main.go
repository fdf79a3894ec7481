package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"fakestore-sync/internal/catalog"
	"fakestore-sync/internal/config"
	"fakestore-sync/internal/converter"
	"fakestore-sync/internal/db"
	productrepo "fakestore-sync/internal/repository/product"
	syncsvc "fakestore-sync/internal/service/sync"
)

func main() {
	var verbose bool
	flag.BoolVar(&verbose, "v", false, "Log each synchronization step")
	flag.Parse()

	cfg := config.FromEnv()

	logger := zap.NewNop()
	if verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			log.Fatalf("init logger: %v", err)
		}
		defer logger.Sync()
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	client := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout, logger)
	engine := syncsvc.New(client, productrepo.NewPostgres(pool, logger), converter.New(), logger)

	start := time.Now()
	products, err := engine.Run(ctx)
	if err != nil {
		log.Fatalf("synchronization failed: %v", err)
	}

	fmt.Printf("Store holds %d products after synchronization (%s)\n", len(products), time.Since(start).Truncate(time.Millisecond))
	for _, p := range products {
		price := ""
		if p.Price != nil {
			price = p.Price.StringFixed(2)
		}
		fmt.Printf("  %s  %-12s %s\n", p.ID, price, p.Name)
	}
}
