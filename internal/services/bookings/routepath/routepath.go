// Package routepath defines the HTTP paths served by the bookings binary.
package routepath

import "strconv"

const (
	Root    = "/"
	Health  = "/healthz"
	Metrics = "/metrics"
	Static  = "/static/"

	APIBookings = "/bookings"

	AppBookings       = "/app/bookings"
	AppBookingsTable  = "/app/bookings/table"
	AppBookingsNew    = "/app/bookings/new"
	AppBookingsExport = "/app/bookings/export"
)

// APIBooking returns the JSON resource path for one booking.
func APIBooking(id int64) string {
	return APIBookings + "/" + strconv.FormatInt(id, 10)
}

// AppBookingEdit returns the edit form path for one booking.
func AppBookingEdit(id int64) string {
	return appBooking(id) + "/edit"
}

// AppBookingStatus returns the status prompt path for one booking.
func AppBookingStatus(id int64) string {
	return appBooking(id) + "/status"
}

// AppBookingDelete returns the delete prompt path for one booking.
func AppBookingDelete(id int64) string {
	return appBooking(id) + "/delete"
}

func appBooking(id int64) string {
	return AppBookings + "/" + strconv.FormatInt(id, 10)
}
