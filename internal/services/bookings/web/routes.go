package web

import (
	"net/http"

	"github.com/louisbranch/facility-bookings/internal/services/bookings/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleRoot)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppBookings, h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppBookings+"/{$}", h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppBookingsTable, h.handleTable)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppBookingsExport, h.handleExport)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppBookingsNew, h.handleNewForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppBookingsNew, h.handleCreate)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppBookings+"/{id}/edit", h.handleEditForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppBookings+"/{id}/edit", h.handleEdit)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppBookings+"/{id}/status", h.handleStatusPrompt)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppBookings+"/{id}/status", h.handleStatus)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppBookings+"/{id}/delete", h.handleDeletePrompt)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppBookings+"/{id}/delete", h.handleDelete)
}
