// Package app composes the bookings HTTP surface and runs the server
// lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"

	platformgrpc "github.com/louisbranch/facility-bookings/internal/platform/grpc"
	"github.com/louisbranch/facility-bookings/internal/platform/metrics"
	"github.com/louisbranch/facility-bookings/internal/platform/timeouts"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/api"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/platform/httpx"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/platform/observability"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/routepath"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/service"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/storage"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/web"
	webstatic "github.com/louisbranch/facility-bookings/internal/services/bookings/web/static"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

// HealthService is the gRPC health service name reported for bookings.
const HealthService = "bookings.v1.Bookings"

// Config defines startup inputs for the bookings server.
type Config struct {
	HTTPAddr string
	// GRPCAddr enables the gRPC health endpoint when set.
	GRPCAddr string
	Store    storage.Store
	// Metrics enables /metrics and request instrumentation when non-nil.
	Metrics *metrics.Metrics
	Logger  *log.Logger
}

// Server hosts the bookings HTTP surface and the optional gRPC health
// endpoint.
type Server struct {
	httpServer   *http.Server
	grpcAddr     string
	grpcServer   *gogrpc.Server
	healthServer *health.Server
	logger       *log.Logger
}

// NewHandler builds the root handler: JSON API, UI, health, metrics and
// static assets behind the shared middleware chain.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Store == nil {
		return nil, errors.New("booking store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	svc, err := service.New(cfg.Store, service.WithMetrics(cfg.Metrics))
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	api.Register(mux, api.NewHandler(svc, logger))
	web.New(svc, logger).Mount(mux)
	mux.Handle(http.MethodGet+" "+routepath.Health, healthHandler(cfg.Store))
	mux.Handle(http.MethodGet+" "+routepath.Static, http.StripPrefix(routepath.Static, http.FileServer(http.FS(webstatic.FS))))
	if cfg.Metrics != nil {
		mux.Handle(http.MethodGet+" "+routepath.Metrics, cfg.Metrics.Handler())
	}

	return httpx.Chain(mux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.RequestLogger(logger),
		observability.HTTPMetrics(cfg.Metrics),
	), nil
}

// healthHandler reports 200 when the store answers a ping and 503 otherwise.
func healthHandler(store storage.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.HealthCheck)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			_ = httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// NewServer validates config and constructs a bookings server.
func NewServer(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose bookings handler: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			ReadTimeout:       timeouts.Read,
			WriteTimeout:      timeouts.Write,
			IdleTimeout:       timeouts.Idle,
		},
		grpcAddr: strings.TrimSpace(cfg.GRPCAddr),
		logger:   logger,
	}
	if s.grpcAddr != "" {
		s.grpcServer, s.healthServer = platformgrpc.NewHealthServer(HealthService)
	}
	return s, nil
}

// ListenAndServe binds the configured addresses and serves until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("bookings server is nil")
	}
	httpListener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	var grpcListener net.Listener
	if s.grpcServer != nil {
		grpcListener, err = net.Listen("tcp", s.grpcAddr)
		if err != nil {
			_ = httpListener.Close()
			return fmt.Errorf("listen on %s: %w", s.grpcAddr, err)
		}
	}
	return s.Serve(ctx, httpListener, grpcListener)
}

// Serve serves HTTP on httpListener, and gRPC health on grpcListener when
// both it and the gRPC server are configured, until ctx ends.
func (s *Server) Serve(ctx context.Context, httpListener, grpcListener net.Listener) error {
	if s == nil {
		return errors.New("bookings server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	if httpListener == nil {
		return errors.New("http listener is required")
	}

	serveErr := make(chan error, 2)
	s.logger.Printf("bookings http listening at %s", httpListener.Addr())
	go func() {
		serveErr <- s.httpServer.Serve(httpListener)
	}()
	grpcRunning := s.grpcServer != nil && grpcListener != nil
	if grpcRunning {
		s.logger.Printf("bookings grpc health listening at %s", grpcListener.Addr())
		platformgrpc.SetServing(s.healthServer, true, HealthService)
		go func() {
			serveErr <- s.grpcServer.Serve(grpcListener)
		}()
	}

	select {
	case <-ctx.Done():
		return s.shutdown(grpcRunning)
	case err := <-serveErr:
		_ = s.shutdown(grpcRunning)
		if err == nil || errors.Is(err, http.ErrServerClosed) || errors.Is(err, gogrpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve bookings: %w", err)
	}
}

func (s *Server) shutdown(grpcRunning bool) error {
	if grpcRunning {
		platformgrpc.SetServing(s.healthServer, false, HealthService)
		s.grpcServer.GracefulStop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown bookings http server: %w", err)
	}
	return nil
}

// Close stops both servers immediately.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.healthServer != nil {
		s.healthServer.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
}
