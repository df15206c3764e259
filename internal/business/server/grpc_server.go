package server

import (
	"context"
	"net"

	"github.com/openkcm/common-sdk/pkg/commongrpc"
	"github.com/samber/oops"
	"google.golang.org/grpc/health"

	slogctx "github.com/veqryn/slog-context"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/openkcm/selfservice-datamanager/internal/config"
)

// HealthServiceName is the service the gRPC health server reports on
// besides the overall server status.
const HealthServiceName = "datamanager"

// StartGRPCServer serves the gRPC health service on the internal port. The
// data manager reports SERVING until ctx is cancelled.
func StartGRPCServer(ctx context.Context, cfg *config.Config) error {
	grpcServer := commongrpc.NewServer(ctx, &cfg.GRPC.GRPCServer)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(HealthServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	listener, err := new(net.ListenConfig).Listen(ctx, "tcp", cfg.GRPC.Address)
	if err != nil {
		return oops.In("gRPC Server").
			WithContext(ctx).
			Wrapf(err, "creating listener")
	}

	go func() {
		slogctx.Info(ctx, "Starting GRPC server", "address", cfg.GRPC.Address)

		if err := grpcServer.Serve(listener); err != nil {
			slogctx.Error(ctx, "Failed to serve gRPC endpoint", "error", err)
		}

		slogctx.Info(ctx, "Stopped gRPC server")
	}()

	<-ctx.Done()

	// Clients watching the health service see NOT_SERVING before the
	// connection goes away.
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.GRPC.ShutdownTimeout)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		slogctx.Info(shutdownCtx, "Completed graceful shutdown of gRPC server")
	case <-shutdownCtx.Done():
		grpcServer.Stop()
		slogctx.Warn(shutdownCtx, "Forced shutdown of gRPC server after timeout")
	}

	return nil
}
