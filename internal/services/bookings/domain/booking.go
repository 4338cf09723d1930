// Package domain defines the booking record, its status lifecycle, and the
// draft/patch shapes used to create and update bookings.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Status is the approval state of a booking.
type Status string

const (
	StatusApproved  Status = "APPROVED"
	StatusCancelled Status = "CANCELLED"
)

// DefaultStatus is the status the store assigns to newly created bookings.
const DefaultStatus = StatusApproved

// Statuses lists every known status in display order.
func Statuses() []Status {
	return []Status{StatusApproved, StatusCancelled}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusApproved, StatusCancelled:
		return true
	default:
		return false
	}
}

// ParseStatus parses a status value, tolerating surrounding whitespace and case.
func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(value)))
	if !status.Valid() {
		return "", fmt.Errorf("unknown booking status %q", value)
	}
	return status, nil
}

// Booking is one facility reservation.
type Booking struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Date      Date      `json:"date"`
	Time      string    `json:"time"`
	Facility  string    `json:"facility"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Draft returns the editable fields of b.
func (b Booking) Draft() Draft {
	return Draft{
		Name:     b.Name,
		Date:     b.Date.String(),
		Time:     b.Time,
		Facility: b.Facility,
		Status:   string(b.Status),
	}
}
