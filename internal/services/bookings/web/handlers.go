package web

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/domain"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/export"
	apperrors "github.com/louisbranch/facility-bookings/internal/services/bookings/platform/errors"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/platform/httpx"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/routepath"
	webi18n "github.com/louisbranch/facility-bookings/internal/services/bookings/web/i18n"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/web/templates"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type handlers struct {
	service BookingService
	logger  *log.Logger
	now     func() time.Time
}

func newHandlers(m Module) handlers {
	h := handlers{service: m.service, logger: m.logger, now: m.now}
	if h.logger == nil {
		h.logger = log.Default()
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// pageContext carries the resolved language for one request.
type pageContext struct {
	loc *message.Printer
	tag language.Tag
}

func (h handlers) page(w http.ResponseWriter, r *http.Request) pageContext {
	loc, tag := webi18n.Resolve(w, r)
	return pageContext{loc: loc, tag: tag}
}

func (h handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	httpx.WriteRedirect(w, r, routepath.AppBookings)
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	pc := h.page(w, r)
	h.writePage(w, r, pc, http.StatusOK, templates.T(pc.loc, "list.heading"), templates.BookingsList(templates.ListView{}, pc.loc))
}

func (h handlers) handleTable(w http.ResponseWriter, r *http.Request) {
	pc := h.page(w, r)
	bookings, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, pc, err, "error.list_failed")
		return
	}
	if httpx.IsHTMXRequest(r) {
		h.writeFragment(w, r, http.StatusOK, templates.BookingsTable(bookings, pc.loc))
		return
	}
	h.writeList(w, r, pc, http.StatusOK, bookings, nil)
}

func (h handlers) handleExport(w http.ResponseWriter, r *http.Request) {
	pc := h.page(w, r)
	bookings, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, pc, err, "error.list_failed")
		return
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, bookings, pc.loc); err != nil {
		h.writeError(w, r, pc, err, "error.list_failed")
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Printf("bookings ui: write export request_id=%s: %v", httpx.RequestIDOf(r), err)
	}
}

func (h handlers) handleNewForm(w http.ResponseWriter, r *http.Request) {
	pc := h.page(w, r)
	draft := domain.Draft{Date: domain.DateOf(h.now()).String()}
	h.writeForm(w, r, pc, http.StatusOK, h.createView(pc, draft))
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	pc := h.page(w, r)
	draft, ok := h.parseDraft(w, r, pc)
	if !ok {
		return
	}
	view := h.createView(pc, draft)
	if missing := draft.MissingFields(); len(missing) > 0 {
		view.Prompt = h.notice(pc, requiredFieldsMessage(pc.loc, missing))
		h.writeForm(w, r, pc, http.StatusUnprocessableEntity, view)
		return
	}
	if _, err := h.service.Create(r.Context(), draft); err != nil {
		h.logFailure(r, err)
		view.Prompt = h.notice(pc, serviceFailureMessage(pc.loc, err, "error.create_failed"))
		h.writeForm(w, r, pc, apperrors.HTTPStatus(err), view)
		return
	}
	httpx.WriteRedirect(w, r, routepath.AppBookings)
}

func (h handlers) handleEditForm(w http.ResponseWriter, r *http.Request) {
	pc := h.page(w, r)
	id, ok := h.pathID(w, r, pc)
	if !ok {
		return
	}
	booking, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.logFailure(r, err)
		heading := templates.T(pc.loc, "form.edit_title")
		h.writePage(w, r, pc, apperrors.HTTPStatus(err), heading,
			templates.FetchError(heading, templates.T(pc.loc, "error.fetch_failed"), pc.loc))
		return
	}
	h.writeForm(w, r, pc, http.StatusOK, h.editView(pc, id, booking.Draft()))
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	pc := h.page(w, r)
	id, ok := h.pathID(w, r, pc)
	if !ok {
		return
	}
	draft, ok := h.parseDraft(w, r, pc)
	if !ok {
		return
	}
	view := h.editView(pc, id, draft)
	if missing := draft.MissingFields(); len(missing) > 0 {
		view.Prompt = h.notice(pc, requiredFieldsMessage(pc.loc, missing))
		h.writeForm(w, r, pc, http.StatusUnprocessableEntity, view)
		return
	}
	if _, err := h.service.Update(r.Context(), id, domain.PatchFromDraft(draft)); err != nil {
		h.logFailure(r, err)
		view.Prompt = h.notice(pc, serviceFailureMessage(pc.loc, err, "error.update_failed"))
		h.writeForm(w, r, pc, apperrors.HTTPStatus(err), view)
		return
	}
	httpx.WriteRedirect(w, r, routepath.AppBookings)
}

func (h handlers) handleStatusPrompt(w http.ResponseWriter, r *http.Request) {
	pc := h.page(w, r)
	id, ok := h.pathID(w, r, pc)
	if !ok {
		return
	}
	booking, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, pc, err, "error.fetch_failed")
		return
	}
	h.writeListWithPrompt(w, r, pc, templates.ModalProps{
		ID:         "status-modal",
		Open:       true,
		Title:      templates.T(pc.loc, "status.title"),
		Body:       templates.StatusSelect(booking.Status, pc.loc),
		ActionURL:  routepath.AppBookingStatus(id),
		DismissURL: routepath.AppBookings,
	})
}

func (h handlers) handleStatus(w http.ResponseWriter, r *http.Request) {
	pc := h.page(w, r)
	id, ok := h.pathID(w, r, pc)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.writeState(w, r, pc, http.StatusBadRequest, err.Error())
		return
	}
	status, err := domain.ParseStatus(r.PostFormValue("status"))
	if err != nil {
		h.writeError(w, r, pc, apperrors.EK(apperrors.KindInvalidInput, domain.KeyInvalidStatus, err.Error()), "error.update_failed")
		return
	}
	if _, err := h.service.Update(r.Context(), id, domain.StatusPatch(status)); err != nil {
		h.writeListNotice(w, r, pc, err, "error.update_failed")
		return
	}
	httpx.WriteRedirect(w, r, routepath.AppBookings)
}

func (h handlers) handleDeletePrompt(w http.ResponseWriter, r *http.Request) {
	pc := h.page(w, r)
	id, ok := h.pathID(w, r, pc)
	if !ok {
		return
	}
	if _, err := h.service.Get(r.Context(), id); err != nil {
		h.writeError(w, r, pc, err, "error.fetch_failed")
		return
	}
	h.writeListWithPrompt(w, r, pc, templates.ModalProps{
		ID:           "delete-modal",
		Open:         true,
		Title:        templates.T(pc.loc, "delete.title"),
		Body:         templates.Text(templates.T(pc.loc, "delete.body")),
		ActionURL:    routepath.AppBookingDelete(id),
		ActionLabel:  templates.T(pc.loc, "modal.yes"),
		DismissURL:   routepath.AppBookings,
		DismissLabel: templates.T(pc.loc, "modal.no"),
	})
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	pc := h.page(w, r)
	id, ok := h.pathID(w, r, pc)
	if !ok {
		return
	}
	if _, err := h.service.Delete(r.Context(), id); err != nil {
		h.writeListNotice(w, r, pc, err, "error.delete_failed")
		return
	}
	httpx.WriteRedirect(w, r, routepath.AppBookings)
}

func (h handlers) createView(pc pageContext, draft domain.Draft) templates.FormView {
	return templates.FormView{
		Heading:   templates.T(pc.loc, "form.create_title"),
		ActionURL: routepath.AppBookingsNew,
		Draft:     draft,
	}
}

func (h handlers) editView(pc pageContext, id int64, draft domain.Draft) templates.FormView {
	return templates.FormView{
		Heading:   templates.T(pc.loc, "form.edit_title"),
		ActionURL: routepath.AppBookingEdit(id),
		Draft:     draft,
	}
}

func (h handlers) notice(pc pageContext, msg string) templates.ModalProps {
	return templates.ModalProps{
		ID:    "notice-modal",
		Open:  true,
		Title: templates.T(pc.loc, "required.title"),
		Body:  templates.Text(msg),
	}
}

func (h handlers) parseDraft(w http.ResponseWriter, r *http.Request, pc pageContext) (domain.Draft, bool) {
	if err := r.ParseForm(); err != nil {
		h.writeState(w, r, pc, http.StatusBadRequest, err.Error())
		return domain.Draft{}, false
	}
	return domain.Draft{
		Name:     r.PostFormValue("name"),
		Date:     r.PostFormValue("date"),
		Time:     r.PostFormValue("time"),
		Facility: r.PostFormValue("facility"),
	}, true
}

func (h handlers) pathID(w http.ResponseWriter, r *http.Request, pc pageContext) (int64, bool) {
	id, ok := httpx.ParseID(r.PathValue("id"))
	if !ok {
		h.writeState(w, r, pc, http.StatusNotFound, templates.T(pc.loc, "error.not_found"))
		return 0, false
	}
	return id, true
}

// writeListNotice re-renders the loaded list with a notice describing a
// failed row action.
func (h handlers) writeListNotice(w http.ResponseWriter, r *http.Request, pc pageContext, err error, fallbackKey string) {
	h.logFailure(r, err)
	msg := serviceFailureMessage(pc.loc, err, fallbackKey)
	if apperrors.Is(err, apperrors.KindNotFound) {
		msg = templates.T(pc.loc, "error.not_found")
	}
	bookings, listErr := h.service.List(r.Context())
	if listErr != nil {
		h.writeError(w, r, pc, listErr, "error.list_failed")
		return
	}
	prompt := h.notice(pc, msg)
	prompt.Title = templates.T(pc.loc, "error.page_title")
	prompt.DismissURL = routepath.AppBookings
	h.writeList(w, r, pc, apperrors.HTTPStatus(err), bookings, templates.Modal(prompt, pc.loc))
}

func (h handlers) writeListWithPrompt(w http.ResponseWriter, r *http.Request, pc pageContext, prompt templates.ModalProps) {
	bookings, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, pc, err, "error.list_failed")
		return
	}
	h.writeList(w, r, pc, http.StatusOK, bookings, templates.Modal(prompt, pc.loc))
}

func (h handlers) writeList(w http.ResponseWriter, r *http.Request, pc pageContext, status int, bookings []domain.Booking, modal templ.Component) {
	view := templates.ListView{Bookings: bookings, Loaded: true, Modal: modal}
	h.writePage(w, r, pc, status, templates.T(pc.loc, "list.heading"), templates.BookingsList(view, pc.loc))
}

func (h handlers) writeForm(w http.ResponseWriter, r *http.Request, pc pageContext, status int, view templates.FormView) {
	h.writePage(w, r, pc, status, view.Heading, templates.BookingForm(view, pc.loc))
}

// writeError renders the failure page for err. Not-found failures get their
// own copy; everything else uses fallbackKey.
func (h handlers) writeError(w http.ResponseWriter, r *http.Request, pc pageContext, err error, fallbackKey string) {
	h.logFailure(r, err)
	msg := templates.T(pc.loc, fallbackKey)
	if key := apperrors.LocalizationKey(err); key != "" && key != domain.KeyRequiredFields {
		msg = templates.T(pc.loc, key)
	}
	if apperrors.Is(err, apperrors.KindNotFound) {
		msg = templates.T(pc.loc, "error.not_found")
	}
	h.writeState(w, r, pc, apperrors.HTTPStatus(err), msg)
}

func (h handlers) writeState(w http.ResponseWriter, r *http.Request, pc pageContext, status int, msg string) {
	body := templates.ErrorState(msg, pc.loc)
	if httpx.IsHTMXRequest(r) {
		h.writeFragment(w, r, status, body)
		return
	}
	h.writePage(w, r, pc, status, templates.T(pc.loc, "error.page_title"), body)
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, pc pageContext, status int, title string, body templ.Component) {
	page := templates.Page{
		Title:       title,
		Lang:        pc.tag.String(),
		CurrentPath: r.URL.Path,
		Languages:   supportedLanguages(),
		Body:        body,
	}
	h.writeFragment(w, r, status, templates.Layout(page, pc.loc))
}

func (h handlers) writeFragment(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	if err := httpx.WriteComponent(w, r, status, component); err != nil {
		h.logger.Printf("bookings ui: render %s request_id=%s: %v", r.URL.Path, httpx.RequestIDOf(r), err)
	}
}

func (h handlers) logFailure(r *http.Request, err error) {
	if err == nil || apperrors.HTTPStatus(err) < http.StatusInternalServerError {
		return
	}
	h.logger.Printf("bookings ui: %s %s request_id=%s: %v", r.Method, r.URL.Path, httpx.RequestIDOf(r), err)
}

// requiredFieldsMessage localizes the blank-field prompt.
func requiredFieldsMessage(loc *message.Printer, fields []string) string {
	labels := make([]string, 0, len(fields))
	for _, field := range fields {
		labels = append(labels, templates.T(loc, "field."+field))
	}
	return templates.T(loc, "error.required_fields", strings.Join(labels, ", "))
}

// serviceFailureMessage explains a rejected write. Validation failures are
// translated from their localization key; anything else uses the generic
// copy under fallbackKey.
func serviceFailureMessage(loc *message.Printer, err error, fallbackKey string) string {
	if !apperrors.Is(err, apperrors.KindInvalidInput) {
		return templates.T(loc, fallbackKey)
	}
	switch key := apperrors.LocalizationKey(err); key {
	case "":
		return templates.T(loc, fallbackKey)
	case domain.KeyRequiredFields:
		var verr *domain.ValidationError
		if errors.As(err, &verr) && len(verr.Missing) > 0 {
			return requiredFieldsMessage(loc, verr.Missing)
		}
		return templates.T(loc, fallbackKey)
	default:
		return templates.T(loc, key)
	}
}

func supportedLanguages() []string {
	tags := webi18n.Supported()
	values := make([]string, 0, len(tags))
	for _, tag := range tags {
		values = append(values, tag.String())
	}
	return values
}
