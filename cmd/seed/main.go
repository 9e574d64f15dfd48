package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/rl1809/sales-manager/internal/adapter/storage"
	"github.com/rl1809/sales-manager/internal/config"
	"github.com/rl1809/sales-manager/internal/core/domain"
	"github.com/rl1809/sales-manager/internal/core/service"
)

const salesPerItem = 3

var starterStock = []domain.InventoryRecord{
	{Name: "Beras 5kg", UnitPrice: 75000, Quantity: 10, CostBasis: 68000},
	{Name: "Gula 1kg", UnitPrice: 15000, Quantity: 2, CostBasis: 12000},
	{Name: "Teh celup", UnitPrice: 6000, Quantity: 25, CostBasis: 4500},
	{Name: "Kemeja", UnitPrice: 120000, Quantity: 4, CostBasis: 80000},
}

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	stores, err := storage.Open(ctx, config.Load())
	if err != nil {
		log.Fatalf("failed to open stores: %v", err)
	}
	defer stores.Close()

	svc := service.NewSalesService(stores.Inventory, stores.Transactions, stores.Cache)

	added := make([]domain.InventoryRecord, 0, len(starterStock))
	for _, rec := range starterStock {
		stamped, err := svc.AddItem(ctx, rec)
		if err != nil {
			log.Fatalf("failed to add %s: %v", rec.Name, err)
		}
		added = append(added, stamped)
	}
	log.Printf("added %d items", len(added))

	// Counters
	var successCount, outOfStock, failCount int
	methods := []string{"cash", "card"}
	start := time.Now()

	for _, rec := range added {
		for i := 0; i < salesPerItem; i++ {
			_, err := svc.Sell(ctx, uuid.NewString(), rec, methods[i%len(methods)])
			switch {
			case err == nil:
				successCount++
				rec.Quantity--
			case errors.Is(err, domain.ErrOutOfStock):
				outOfStock++
			default:
				failCount++
				log.Printf("sale of %s failed: %v", rec.Name, err)
			}
		}
	}
	elapsed := time.Since(start)

	// Results
	fmt.Println("============== SEED RESULTS ==============")
	fmt.Printf("Items Added:      %d\n", len(added))
	fmt.Printf("Sales Attempted:  %d\n", len(added)*salesPerItem)
	fmt.Printf("Successful:       %d\n", successCount)
	fmt.Printf("Out Of Stock:     %d\n", outOfStock)
	fmt.Printf("Failed:           %d\n", failCount)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	summary, err := svc.Summary(ctx)
	if err != nil {
		fmt.Printf("Summary: %s\n", domain.Reason(err))
		return
	}
	fmt.Printf("Total Sales:      %d\n", summary.TotalSales)
	fmt.Printf("Net Profit:       %d\n", summary.Profit)
}
