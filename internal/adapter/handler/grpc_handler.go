package handler

import (
	"context"
	"log"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/rl1809/sales-manager/internal/core/service"
)

// ServiceName is the name reported by the gRPC health service.
const ServiceName = "salesmanager.SalesService"

type GRPCHandler struct {
	health       *health.Server
	salesService *service.SalesService
}

func NewGRPCHandler(salesService *service.SalesService) *GRPCHandler {
	return &GRPCHandler{
		health:       health.NewServer(),
		salesService: salesService,
	}
}

// Register adds the health and reflection services to srv.
func (h *GRPCHandler) Register(srv *grpc.Server) {
	healthpb.RegisterHealthServer(srv, h.health)
	reflection.Register(srv)
}

// Refresh sets the serving status from whether the inventory store can
// currently be read.
func (h *GRPCHandler) Refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if err := h.salesService.Ping(ctx); err != nil {
		log.Printf("health: store check failed: %v", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
	return status
}

// Shutdown marks every service as not serving so clients drain first.
func (h *GRPCHandler) Shutdown() {
	h.health.Shutdown()
}
