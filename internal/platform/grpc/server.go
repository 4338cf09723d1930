// Package grpc hosts the gRPC health surface of the bookings binary and the
// client helpers that check it.
package grpc

import (
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// NewHealthServer returns a gRPC server instrumented with otelgrpc that
// exposes grpc.health.v1.Health. The overall status ("") and every named
// service start as NOT_SERVING until the caller marks them ready.
func NewHealthServer(services ...string) (*gogrpc.Server, *health.Server) {
	server := gogrpc.NewServer(gogrpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	for _, service := range services {
		healthServer.SetServingStatus(service, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	}
	return server, healthServer
}

// SetServing marks the overall status and every named service as serving or
// not serving.
func SetServing(healthServer *health.Server, serving bool, services ...string) {
	if healthServer == nil {
		return
	}
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	healthServer.SetServingStatus("", status)
	for _, service := range services {
		healthServer.SetServingStatus(service, status)
	}
}
