package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"google.golang.org/grpc"

	"github.com/rl1809/sales-manager/internal/adapter/handler"
	"github.com/rl1809/sales-manager/internal/adapter/storage"
	"github.com/rl1809/sales-manager/internal/config"
	"github.com/rl1809/sales-manager/internal/core/service"
)

const healthInterval = 15 * time.Second

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open stores: %v", err)
	}

	// Initialize service
	salesService := service.NewSalesService(stores.Inventory, stores.Transactions, stores.Cache)

	// Initialize gRPC server
	grpcServer := grpc.NewServer()
	grpcHandler := handler.NewGRPCHandler(salesService)
	grpcHandler.Register(grpcServer)
	log.Printf("store health: %v", grpcHandler.Refresh(ctx))

	lis, err := net.Listen("tcp", cfg.GRPCAddress())
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	go func() {
		log.Printf("gRPC server listening on %s", cfg.GRPCAddress())
		if err := grpcServer.Serve(lis); err != nil {
			log.Printf("gRPC server error: %v", err)
		}
	}()

	go func() {
		ticker := time.NewTicker(healthInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				grpcHandler.Refresh(ctx)
			}
		}
	}()

	// Initialize HTTP server
	mux := http.NewServeMux()
	handler.NewHTTPHandler(salesService).Register(mux)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddress(),
		Handler: mux,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	cancel()

	// Stop HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	// Stop gRPC server
	grpcHandler.Shutdown()
	grpcServer.GracefulStop()
	log.Println("gRPC server stopped")

	// Close connections
	if err := stores.Close(); err != nil {
		log.Printf("failed to close stores: %v", err)
	}
	log.Println("connections closed")
}
