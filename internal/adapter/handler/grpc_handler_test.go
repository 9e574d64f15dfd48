package handler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/rl1809/sales-manager/internal/adapter/storage"
	"github.com/rl1809/sales-manager/internal/core/service"
)

func TestGRPCHandler_RefreshReflectsStore(t *testing.T) {
	dir := t.TempDir()
	invPath := filepath.Join(dir, "inventory.csv")
	svc := service.NewSalesService(
		storage.NewCSVInventoryStore(invPath),
		storage.NewCSVTransactionLog(filepath.Join(dir, "transactions.csv")),
		storage.NoopCache{},
	)
	h := NewGRPCHandler(svc)
	ctx := context.Background()

	if got := h.Refresh(ctx); got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("expected SERVING, got %v", got)
	}
	resp, err := h.health.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("expected SERVING, got %v", resp.GetStatus())
	}

	// an unparseable inventory file makes the store unreadable
	if err := os.WriteFile(invPath, []byte("only,two\n"), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if got := h.Refresh(ctx); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Errorf("expected NOT_SERVING, got %v", got)
	}
}
