// Package web serves the server-rendered bookings UI.
package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/louisbranch/facility-bookings/internal/services/bookings/domain"
)

// BookingService is the booking use-case surface the UI depends on.
type BookingService interface {
	Create(ctx context.Context, draft domain.Draft) (domain.Booking, error)
	Get(ctx context.Context, id int64) (domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	Update(ctx context.Context, id int64, patch domain.Patch) (domain.Booking, error)
	Delete(ctx context.Context, id int64) (domain.Booking, error)
}

// Module provides the bookings UI routes.
type Module struct {
	service BookingService
	logger  *log.Logger
	now     func() time.Time
}

// Option customizes a Module.
type Option func(*Module)

// WithClock overrides the clock used for form defaults.
func WithClock(now func() time.Time) Option {
	return func(m *Module) {
		if now != nil {
			m.now = now
		}
	}
}

// New returns a UI module backed by service. A nil logger uses the default
// logger.
func New(service BookingService, logger *log.Logger, opts ...Option) Module {
	if logger == nil {
		logger = log.Default()
	}
	m := Module{service: service, logger: logger, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "bookings-ui" }

// Mount wires the UI route handlers onto mux.
func (m Module) Mount(mux *http.ServeMux) {
	registerRoutes(mux, newHandlers(m))
}
