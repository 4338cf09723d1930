// Package main starts the facility bookings service process lifecycle.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	bookingscmd "github.com/louisbranch/facility-bookings/internal/cmd/bookings"
	"github.com/louisbranch/facility-bookings/internal/platform/config"
)

func main() {
	log.SetPrefix("[BOOKINGS] ")
	cfg, err := bookingscmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse config: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.HealthCheck {
		if err := bookingscmd.HealthCheck(ctx, cfg); err != nil {
			stop()
			log.Fatalf("health check: %v", err)
		}
		return
	}

	if err := bookingscmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
