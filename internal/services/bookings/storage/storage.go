// Package storage defines persistence contracts for booking records.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/facility-bookings/internal/services/bookings/domain"
)

// ErrNotFound indicates a requested booking record is missing.
var ErrNotFound = errors.New("record not found")

// NewBooking holds the fields supplied when inserting a booking. The store
// assigns the id, the default status and the timestamps.
type NewBooking struct {
	Name     string
	Date     domain.Date
	Time     string
	Facility string
}

// BookingPatch holds the fields to overwrite on update; nil fields are kept.
type BookingPatch struct {
	Name     *string
	Date     *domain.Date
	Time     *string
	Facility *string
	Status   *domain.Status
}

// IsEmpty reports whether the patch changes nothing.
func (p BookingPatch) IsEmpty() bool {
	return p.Name == nil && p.Date == nil && p.Time == nil && p.Facility == nil && p.Status == nil
}

// BookingStore persists booking records.
type BookingStore interface {
	CreateBooking(ctx context.Context, booking NewBooking) (domain.Booking, error)
	GetBooking(ctx context.Context, id int64) (domain.Booking, error)
	// ListBookings returns every booking, most recently created first.
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	UpdateBooking(ctx context.Context, id int64, patch BookingPatch) (domain.Booking, error)
	// DeleteBooking removes the booking and returns the deleted record.
	DeleteBooking(ctx context.Context, id int64) (domain.Booking, error)
}

// Store is a BookingStore with connection lifecycle.
type Store interface {
	BookingStore
	Ping(ctx context.Context) error
	Close() error
}
