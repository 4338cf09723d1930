package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	for _, lang := range []language.Tag{language.AmericanEnglish, language.English} {
		// Chrome
		message.SetString(lang, "app.name", "Facility Bookings")
		message.SetString(lang, "nav.create", "Create Booking")
		message.SetString(lang, "nav.export", "Export")
		message.SetString(lang, "nav.language", "Language")
		message.SetString(lang, "lang.en-US", "English")
		message.SetString(lang, "lang.pt-BR", "Português")

		// List
		message.SetString(lang, "list.heading", "Bookings")
		message.SetString(lang, "list.loading", "Loading...")
		message.SetString(lang, "list.empty", "No records found")
		message.SetString(lang, "table.name", "Name")
		message.SetString(lang, "table.date", "Booking Date")
		message.SetString(lang, "table.time", "Booking Time")
		message.SetString(lang, "table.facility", "Facility")
		message.SetString(lang, "table.status", "Status")
		message.SetString(lang, "table.action", "Action")
		message.SetString(lang, "action.edit", "Edit")
		message.SetString(lang, "action.delete", "Delete")
		message.SetString(lang, "action.change_status", "Change Status")
		message.SetString(lang, "status.APPROVED", "APPROVED")
		message.SetString(lang, "status.CANCELLED", "CANCELLED")

		// Prompts
		message.SetString(lang, "modal.save", "Save")
		message.SetString(lang, "modal.close", "Close")
		message.SetString(lang, "modal.yes", "Yes")
		message.SetString(lang, "modal.no", "No")
		message.SetString(lang, "status.title", "Change Booking Status")
		message.SetString(lang, "status.label", "Status:")
		message.SetString(lang, "delete.title", "Confirm Deletion")
		message.SetString(lang, "delete.body", "Are you sure you want to delete this booking?")
		message.SetString(lang, "required.title", "Required")

		// Forms
		message.SetString(lang, "form.create_title", "Create Booking")
		message.SetString(lang, "form.edit_title", "Edit Booking")
		message.SetString(lang, "form.name", "Name:")
		message.SetString(lang, "form.date", "Date:")
		message.SetString(lang, "form.time", "Time:")
		message.SetString(lang, "form.facility", "Facility:")
		message.SetString(lang, "form.submit", "Save")
		message.SetString(lang, "form.back", "Back")
		message.SetString(lang, "field.Name", "Name")
		message.SetString(lang, "field.Facility", "Facility")
		message.SetString(lang, "field.Time", "Time")
		message.SetString(lang, "field.Date", "Date")
		message.SetString(lang, "field.Status", "Status")

		// Errors
		message.SetString(lang, "error.required_fields", "%s are required fields.")
		message.SetString(lang, "error.invalid_date", "Date must be a valid YYYY-MM-DD date.")
		message.SetString(lang, "error.invalid_status", "Status must be APPROVED or CANCELLED.")
		message.SetString(lang, "error.invalid_field", "Some fields are invalid.")
		message.SetString(lang, "error.create_failed", "Failed to create a booking.")
		message.SetString(lang, "error.update_failed", "Failed to update booking.")
		message.SetString(lang, "error.delete_failed", "Failed to delete booking.")
		message.SetString(lang, "error.fetch_failed", "Error: Failed to fetch booking")
		message.SetString(lang, "error.list_failed", "Failed to load bookings.")
		message.SetString(lang, "error.page_title", "Something went wrong")
		message.SetString(lang, "error.not_found", "Booking not found")
		message.SetString(lang, "error.back_to_list", "Back to bookings")

		// Export
		message.SetString(lang, "export.sheet", "Bookings")
		message.SetString(lang, "export.id", "ID")
		message.SetString(lang, "export.created_at", "Created At")
		message.SetString(lang, "export.updated_at", "Updated At")
	}
}
