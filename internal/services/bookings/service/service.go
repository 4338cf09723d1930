// Package service implements booking use cases shared by the JSON API and the
// server-rendered UI.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/facility-bookings/internal/platform/metrics"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/domain"
	apperrors "github.com/louisbranch/facility-bookings/internal/services/bookings/platform/errors"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/facility-bookings/internal/services/bookings/service"

// Operation names used for spans and metrics.
const (
	OpCreate = "create"
	OpGet    = "get"
	OpList   = "list"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Service validates booking input and delegates persistence to a store.
type Service struct {
	store   storage.BookingStore
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records per-operation counters on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer overrides the global tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// New builds a Service over store.
func New(store storage.BookingStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("booking store is required")
	}
	s := &Service{
		store:  store,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Create validates draft and stores a new booking. Any supplied status is
// ignored; new bookings take the store default.
func (s *Service) Create(ctx context.Context, draft domain.Draft) (booking domain.Booking, err error) {
	ctx, finish := s.begin(ctx, OpCreate, 0)
	defer func() { finish(err) }()

	draft.Status = ""
	input, err := draft.Validate()
	if err != nil {
		return domain.Booking{}, invalidInput(err)
	}
	created, err := s.store.CreateBooking(ctx, storage.NewBooking{
		Name:     input.Name,
		Date:     input.Date,
		Time:     input.Time,
		Facility: input.Facility,
	})
	if err != nil {
		return domain.Booking{}, persistence("create booking", err)
	}
	return created, nil
}

// Get returns one booking.
func (s *Service) Get(ctx context.Context, id int64) (booking domain.Booking, err error) {
	ctx, finish := s.begin(ctx, OpGet, id)
	defer func() { finish(err) }()

	found, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, storeError("get booking", err)
	}
	return found, nil
}

// List returns every booking, newest id first.
func (s *Service) List(ctx context.Context) (bookings []domain.Booking, err error) {
	ctx, finish := s.begin(ctx, OpList, 0)
	defer func() { finish(err) }()

	listed, err := s.store.ListBookings(ctx)
	if err != nil {
		return nil, persistence("list bookings", err)
	}
	if listed == nil {
		listed = []domain.Booking{}
	}
	return listed, nil
}

// Update merges patch onto the stored booking, validates the result, and
// writes the supplied fields. The existence check and the write are separate
// statements, so a concurrent delete between them surfaces as not found.
func (s *Service) Update(ctx context.Context, id int64, patch domain.Patch) (booking domain.Booking, err error) {
	ctx, finish := s.begin(ctx, OpUpdate, id)
	defer func() { finish(err) }()

	current, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, storeError("get booking", err)
	}
	input, err := patch.Apply(current.Draft()).Validate()
	if err != nil {
		return domain.Booking{}, invalidInput(err)
	}

	var change storage.BookingPatch
	if patch.Name != nil {
		change.Name = &input.Name
	}
	if patch.Date != nil {
		change.Date = &input.Date
	}
	if patch.Time != nil {
		change.Time = &input.Time
	}
	if patch.Facility != nil {
		change.Facility = &input.Facility
	}
	if patch.Status != nil && input.Status != "" {
		change.Status = &input.Status
	}

	updated, err := s.store.UpdateBooking(ctx, id, change)
	if err != nil {
		return domain.Booking{}, storeError("update booking", err)
	}
	return updated, nil
}

// Delete removes one booking and returns it.
func (s *Service) Delete(ctx context.Context, id int64) (booking domain.Booking, err error) {
	ctx, finish := s.begin(ctx, OpDelete, id)
	defer func() { finish(err) }()

	deleted, err := s.store.DeleteBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, storeError("delete booking", err)
	}
	return deleted, nil
}

func (s *Service) begin(ctx context.Context, op string, id int64) (context.Context, func(error)) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "bookings."+op)
	if id > 0 {
		span.SetAttributes(attribute.Int64("booking.id", id))
	}
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(apperrors.KindOf(err)))
		}
		span.End()
		s.metrics.ObserveOperation(op, err, time.Since(start))
	}
}

func invalidInput(err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return apperrors.WrapK(apperrors.KindInvalidInput, verr.Key(), verr.Error(), verr)
	}
	return apperrors.Wrap(apperrors.KindInvalidInput, err.Error(), err)
}

func storeError(action string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.Wrap(apperrors.KindNotFound, "Booking not found", err)
	}
	return persistence(action, err)
}

func persistence(action string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.KindUnavailable, action+" interrupted", err)
	}
	return apperrors.Wrap(apperrors.KindUnknown, action+" failed", fmt.Errorf("%s: %w", action, err))
}
