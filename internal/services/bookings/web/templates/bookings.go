package templates

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/domain"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/routepath"
)

// ListView is the bookings list page state.
type ListView struct {
	Bookings []domain.Booking
	// Loaded is false for the initial shell, which fetches the table once the
	// page is displayed.
	Loaded bool
	Modal  templ.Component
}

// BookingsList renders the list heading, the table (or its loading
// placeholder), and an optional open prompt.
func BookingsList(view ListView, loc Localizer) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<section class="bookings"><h1>`)
		hw.text(T(loc, "list.heading"))
		hw.raw("</h1>")
		if view.Loaded {
			hw.render(BookingsTable(view.Bookings, loc))
		} else {
			hw.raw(`<div class="panel" id="bookings-table"`)
			hw.attr("hx-get", routepath.AppBookingsTable)
			hw.raw(` hx-trigger="load" hx-swap="outerHTML">`)
			hw.render(Spinner(loc))
			hw.raw("</div>")
		}
		hw.render(view.Modal)
		hw.raw("</section>")
	})
}

// Spinner renders the loading indicator.
func Spinner(loc Localizer) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<div class="spinner" role="status"><span class="spinner-wheel" aria-hidden="true"></span><span class="sr-only">`)
		hw.text(T(loc, "list.loading"))
		hw.raw("</span></div>")
	})
}

// BookingsTable renders the empty state or one row per booking.
func BookingsTable(bookings []domain.Booking, loc Localizer) templ.Component {
	return component(func(hw *htmlWriter) {
		if len(bookings) == 0 {
			hw.raw(`<div class="panel empty" id="bookings-table">`)
			hw.text(T(loc, "list.empty"))
			hw.raw("</div>")
			return
		}
		hw.raw(`<div class="panel" id="bookings-table"><table class="bookings-table"><thead><tr>`)
		for _, key := range []string{"table.name", "table.date", "table.time", "table.facility", "table.status", "table.action"} {
			hw.raw("<th>")
			hw.text(T(loc, key))
			hw.raw("</th>")
		}
		hw.raw("</tr></thead><tbody>")
		for _, booking := range bookings {
			writeBookingRow(hw, booking, loc)
		}
		hw.raw("</tbody></table></div>")
	})
}

func writeBookingRow(hw *htmlWriter, booking domain.Booking, loc Localizer) {
	hw.raw("<tr")
	hw.attr("class", RowClass(booking.Status))
	hw.attr("data-booking-id", strconv.FormatInt(booking.ID, 10))
	hw.raw(`><td class="text-left">`)
	hw.text(booking.Name)
	hw.raw("</td><td>")
	hw.text(booking.Date.String())
	hw.raw("</td><td>")
	hw.text(booking.Time)
	hw.raw(`</td><td class="text-left">`)
	hw.text(booking.Facility)
	hw.raw("</td><td>")
	hw.text(StatusLabel(booking.Status, loc))
	hw.raw(`</td><td class="actions"><a class="button primary"`)
	hw.attr("href", routepath.AppBookingEdit(booking.ID))
	hw.raw(">")
	hw.text(T(loc, "action.edit"))
	hw.raw(`</a><a class="button danger"`)
	hw.attr("href", routepath.AppBookingDelete(booking.ID))
	hw.raw(">")
	hw.text(T(loc, "action.delete"))
	hw.raw(`</a><a class="button primary"`)
	hw.attr("href", routepath.AppBookingStatus(booking.ID))
	hw.raw(">")
	hw.text(T(loc, "action.change_status"))
	hw.raw("</a></td></tr>")
}

// RowClass returns the row tint for status.
func RowClass(status domain.Status) string {
	switch status {
	case domain.StatusApproved:
		return "row-approved"
	case domain.StatusCancelled:
		return "row-cancelled"
	default:
		return ""
	}
}

// StatusLabel returns the localized label for status.
func StatusLabel(status domain.Status, loc Localizer) string {
	if !status.Valid() {
		return string(status)
	}
	return T(loc, "status."+string(status))
}

// StatusSelect renders the status picker used inside the status prompt.
func StatusSelect(current domain.Status, loc Localizer) templ.Component {
	return component(func(hw *htmlWriter) {
		if !current.Valid() {
			current = domain.DefaultStatus
		}
		hw.raw(`<div class="field"><label for="statusSelect">`)
		hw.text(T(loc, "status.label"))
		hw.raw(`</label><select id="statusSelect" name="status">`)
		for _, status := range domain.Statuses() {
			hw.raw("<option")
			hw.attr("value", string(status))
			if status == current {
				hw.raw(" selected")
			}
			hw.raw(">")
			hw.text(StatusLabel(status, loc))
			hw.raw("</option>")
		}
		hw.raw("</select></div>")
	})
}
