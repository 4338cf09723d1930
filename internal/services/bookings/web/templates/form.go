package templates

import (
	"github.com/a-h/templ"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/domain"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/routepath"
)

// FormView is the create or edit form state.
type FormView struct {
	Heading   string
	ActionURL string
	Draft     domain.Draft
	Prompt    ModalProps
}

// BookingForm renders the booking form and its prompt.
func BookingForm(view FormView, loc Localizer) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<section class="booking-form"><h1>`)
		hw.text(view.Heading)
		hw.raw(`</h1><form method="post" class="form"`)
		hw.attr("action", view.ActionURL)
		hw.raw(">")
		writeInput(hw, "name", "text", T(loc, "form.name"), view.Draft.Name)
		writeInput(hw, "date", "date", T(loc, "form.date"), view.Draft.Date)
		writeInput(hw, "time", "time", T(loc, "form.time"), view.Draft.Time)
		writeInput(hw, "facility", "text", T(loc, "form.facility"), view.Draft.Facility)
		hw.raw(`<div class="form-actions"><button type="submit" class="button primary">`)
		hw.text(T(loc, "form.submit"))
		hw.raw(`</button><a class="button muted"`)
		hw.attr("href", routepath.AppBookings)
		hw.raw(">")
		hw.text(T(loc, "form.back"))
		hw.raw("</a></div></form>")
		hw.render(Modal(view.Prompt, loc))
		hw.raw("</section>")
	})
}

func writeInput(hw *htmlWriter, name, inputType, label, value string) {
	hw.raw(`<div class="field"><label`)
	hw.attr("for", name)
	hw.raw(">")
	hw.text(label)
	hw.raw("</label><input")
	hw.attr("type", inputType)
	hw.attr("id", name)
	hw.attr("name", name)
	hw.attr("value", value)
	hw.raw("></div>")
}

// FetchError renders the edit page when the booking could not be loaded.
func FetchError(heading, message string, loc Localizer) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<section class="booking-form"><h1>`)
		hw.text(heading)
		hw.raw(`</h1><p class="inline-error" role="alert">`)
		hw.text(message)
		hw.raw(`</p><a class="button muted"`)
		hw.attr("href", routepath.AppBookings)
		hw.raw(">")
		hw.text(T(loc, "form.back"))
		hw.raw("</a></section>")
	})
}

// ErrorState renders a full-page failure message.
func ErrorState(message string, loc Localizer) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<section class="error-state" id="app-error-state"><h1>`)
		hw.text(T(loc, "error.page_title"))
		hw.raw("</h1><p>")
		hw.text(message)
		hw.raw(`</p><a class="button muted"`)
		hw.attr("href", routepath.AppBookings)
		hw.raw(">")
		hw.text(T(loc, "error.back_to_list"))
		hw.raw("</a></section>")
	})
}
