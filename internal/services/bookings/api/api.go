// Package api serves the bookings JSON API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/louisbranch/facility-bookings/internal/services/bookings/domain"
	apperrors "github.com/louisbranch/facility-bookings/internal/services/bookings/platform/errors"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/platform/httpx"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/routepath"
)

const maxBodyBytes = 1 << 20

// BookingService is the booking use-case surface the API depends on.
type BookingService interface {
	Create(ctx context.Context, draft domain.Draft) (domain.Booking, error)
	Get(ctx context.Context, id int64) (domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	Update(ctx context.Context, id int64, patch domain.Patch) (domain.Booking, error)
	Delete(ctx context.Context, id int64) (domain.Booking, error)
}

// Handler serves /bookings.
type Handler struct {
	service BookingService
	logger  *log.Logger
}

// NewHandler builds the API handler. A nil logger uses the default logger.
func NewHandler(service BookingService, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Register mounts the API routes on mux.
func Register(mux *http.ServeMux, h *Handler) {
	if mux == nil || h == nil {
		return
	}
	mux.HandleFunc(http.MethodPost+" "+routepath.APIBookings, h.handleCreate)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIBookings, h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIBookings+"/{id}", h.handleGet)
	mux.HandleFunc(http.MethodPut+" "+routepath.APIBookings+"/{id}", h.handleUpdate)
	mux.HandleFunc(http.MethodDelete+" "+routepath.APIBookings+"/{id}", h.handleDelete)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var draft domain.Draft
	if err := decodeBody(w, r, &draft); err != nil {
		h.writeError(w, r, err)
		return
	}
	created, err := h.service.Create(r.Context(), draft)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusCreated, created)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, bookings)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.writeError(w, r, errBookingNotFound)
		return
	}
	booking, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, booking)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.writeError(w, r, errBookingNotFound)
		return
	}
	var patch domain.Patch
	if err := decodeBody(w, r, &patch); err != nil {
		h.writeError(w, r, err)
		return
	}
	updated, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.writeError(w, r, errBookingNotFound)
		return
	}
	if _, err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

var errBookingNotFound = apperrors.E(apperrors.KindNotFound, "Booking not found")

func pathID(r *http.Request) (int64, bool) {
	return httpx.ParseID(r.PathValue("id"))
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Wrap(apperrors.KindInvalidInput, "Request body is required", err)
		}
		return apperrors.Wrap(apperrors.KindInvalidInput, "Invalid JSON body", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperrors.Wrap(apperrors.KindInvalidInput, "Invalid JSON body", fmt.Errorf("unexpected data after JSON value: %v", err))
	}
	return nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	if err := httpx.WriteJSON(w, status, payload); err != nil {
		h.logger.Printf("write response path=%s request_id=%s err=%v", r.URL.Path, httpx.RequestIDOf(r), err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Printf("api error method=%s path=%s request_id=%s err=%v cause=%v", r.Method, r.URL.Path, httpx.RequestIDOf(r), err, errors.Unwrap(err))
	}
	httpx.WriteError(w, err)
}
