package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/rl1809/sales-manager/internal/adapter/cli"
	"github.com/rl1809/sales-manager/internal/adapter/storage"
	"github.com/rl1809/sales-manager/internal/config"
	"github.com/rl1809/sales-manager/internal/core/domain"
	"github.com/rl1809/sales-manager/internal/core/service"
)

func main() {
	_ = godotenv.Load()
	log.SetFlags(0)

	ctx := context.Background()
	stores, err := storage.Open(ctx, config.Load())
	if err != nil {
		log.Fatalf("Failed to open stores: %v", err)
	}
	defer stores.Close()

	svc := service.NewSalesService(stores.Inventory, stores.Transactions, stores.Cache)
	if err := cli.Run(ctx, svc, os.Args[1:], os.Stdout); err != nil {
		stores.Close()
		log.Fatalf("Error: %s", domain.Reason(err))
	}
}
