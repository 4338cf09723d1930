package templates

import "github.com/a-h/templ"

// ModalProps configures a confirmation or notification prompt.
type ModalProps struct {
	ID    string
	Open  bool
	Title string
	Body  templ.Component
	// ActionURL, when set, wraps Body in a POST form whose primary button
	// submits it.
	ActionURL   string
	ActionLabel string
	// DismissURL, when set, renders the dismiss control as a link; otherwise
	// it closes the native dialog in place.
	DismissURL   string
	DismissLabel string
}

// Modal renders an open prompt, or nothing when props.Open is false.
func Modal(props ModalProps, loc Localizer) templ.Component {
	return component(func(hw *htmlWriter) {
		if !props.Open {
			return
		}
		actionLabel := props.ActionLabel
		if actionLabel == "" {
			actionLabel = T(loc, "modal.save")
		}
		dismissLabel := props.DismissLabel
		if dismissLabel == "" {
			dismissLabel = T(loc, "modal.close")
		}
		id := props.ID
		if id == "" {
			id = "modal"
		}

		hw.raw(`<dialog class="modal" open`)
		hw.attr("id", id)
		hw.attr("aria-labelledby", id+"-title")
		hw.raw("><h2")
		hw.attr("id", id+"-title")
		hw.raw(">")
		hw.text(props.Title)
		hw.raw("</h2>")

		if props.ActionURL != "" {
			hw.raw(`<form method="post"`)
			hw.attr("action", props.ActionURL)
			hw.raw(">")
			hw.render(props.Body)
			hw.raw(`<div class="modal-actions"><button type="submit" class="button primary">`)
			hw.text(actionLabel)
			hw.raw("</button>")
			if props.DismissURL != "" {
				writeDismissLink(hw, props.DismissURL, dismissLabel)
			} else {
				hw.raw(`<button type="submit" class="button secondary" formmethod="dialog" formnovalidate>`)
				hw.text(dismissLabel)
				hw.raw("</button>")
			}
			hw.raw("</div></form></dialog>")
			return
		}

		hw.render(props.Body)
		hw.raw(`<div class="modal-actions">`)
		if props.DismissURL != "" {
			writeDismissLink(hw, props.DismissURL, dismissLabel)
		} else {
			hw.raw(`<form method="dialog"><button type="submit" class="button secondary">`)
			hw.text(dismissLabel)
			hw.raw("</button></form>")
		}
		hw.raw("</div></dialog>")
	})
}

func writeDismissLink(hw *htmlWriter, href, label string) {
	hw.raw(`<a class="button secondary"`)
	hw.attr("href", href)
	hw.raw(">")
	hw.text(label)
	hw.raw("</a>")
}
