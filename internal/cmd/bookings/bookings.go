// Package bookings parses bookings service configuration and launches the
// server.
package bookings

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	entrypoint "github.com/louisbranch/facility-bookings/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/facility-bookings/internal/platform/grpc"
	"github.com/louisbranch/facility-bookings/internal/platform/metrics"
	"github.com/louisbranch/facility-bookings/internal/platform/timeouts"
	server "github.com/louisbranch/facility-bookings/internal/services/bookings/app"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/storage"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/storage/gormstore"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/storage/sqlite"
)

// Storage drivers accepted by BOOKINGS_DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	envFileVar     = "BOOKINGS_ENV_FILE"
	defaultEnvFile = ".env"
)

// Config holds bookings command configuration.
type Config struct {
	HTTPAddr       string `env:"BOOKINGS_HTTP_ADDR" envDefault:"localhost:3000"`
	GRPCAddr       string `env:"BOOKINGS_GRPC_ADDR"`
	DBDriver       string `env:"BOOKINGS_DB_DRIVER" envDefault:"sqlite"`
	DBPath         string `env:"BOOKINGS_DB_PATH" envDefault:"data/bookings.db"`
	DBDSN          string `env:"BOOKINGS_DB_DSN"`
	DBMaxOpenConns int    `env:"BOOKINGS_DB_MAX_OPEN_CONNS" envDefault:"10"`
	MetricsEnabled bool   `env:"BOOKINGS_METRICS_ENABLED" envDefault:"true"`

	// HealthCheck checks a running instance over gRPC instead of serving.
	HealthCheck bool
}

// ParseConfig loads the env file named by BOOKINGS_ENV_FILE (default .env),
// then environment defaults, then flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	envFile, ok := os.LookupEnv(envFileVar)
	if !ok {
		envFile = defaultEnvFile
	}
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg, envFile); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "gRPC health listen address (empty disables it)")
	fs.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "Storage driver: sqlite or postgres")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database file")
	fs.StringVar(&cfg.DBDSN, "db-dsn", cfg.DBDSN, "PostgreSQL connection string")
	fs.BoolVar(&cfg.MetricsEnabled, "metrics", cfg.MetricsEnabled, "Expose Prometheus metrics on /metrics")
	fs.BoolVar(&cfg.HealthCheck, "healthcheck", false, "Check the gRPC health endpoint at -grpc-addr and exit")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks driver-specific settings.
func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return fmt.Errorf("http address is required")
	}
	switch c.DBDriver {
	case DriverSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return fmt.Errorf("BOOKINGS_DB_PATH is required for the %s driver", DriverSQLite)
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return fmt.Errorf("BOOKINGS_DB_DSN is required for the %s driver", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.DBDriver)
	}
	return nil
}

// OpenStore opens the configured booking store.
func OpenStore(cfg Config) (storage.Store, error) {
	switch cfg.DBDriver {
	case DriverSQLite:
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create storage dir: %w", err)
			}
		}
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open bookings sqlite store: %w", err)
		}
		return store, nil
	case DriverPostgres:
		store, err := gormstore.OpenPostgres(cfg.DBDSN, gormstore.Options{
			MaxOpenConns: cfg.DBMaxOpenConns,
			MaxIdleConns: cfg.DBMaxOpenConns,
		})
		if err != nil {
			return nil, fmt.Errorf("open bookings postgres store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.DBDriver)
	}
}

// HealthCheck dials the gRPC health endpoint at cfg.GRPCAddr and fails
// unless the bookings service reports SERVING within timeouts.GRPCDial.
func HealthCheck(ctx context.Context, cfg Config) error {
	addr := strings.TrimSpace(cfg.GRPCAddr)
	if addr == "" {
		return fmt.Errorf("BOOKINGS_GRPC_ADDR is required for the health check")
	}
	conn, err := platformgrpc.DialWithHealth(ctx, addr, server.HealthService, timeouts.GRPCDial, log.Printf)
	if err != nil {
		return err
	}
	return conn.Close()
}

// Run starts the bookings server and blocks until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBookings, func(ctx context.Context) error {
		store, err := OpenStore(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close bookings store: %v", err)
			}
		}()

		var m *metrics.Metrics
		if cfg.MetricsEnabled {
			m = metrics.New()
		}
		srv, err := server.NewServer(server.Config{
			HTTPAddr: cfg.HTTPAddr,
			GRPCAddr: cfg.GRPCAddr,
			Store:    store,
			Metrics:  m,
			Logger:   log.Default(),
		})
		if err != nil {
			return err
		}
		return srv.ListenAndServe(ctx)
	})
}
