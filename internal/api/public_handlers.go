package api

import (
	"encoding/json"
	"net/http"

	"agendaja/internal/entities"
	apperr "agendaja/internal/errors"
	"agendaja/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PublicHandler struct {
	Booking *service.BookingService
	Catalog *service.CatalogService
}

func NewPublicHandler(booking *service.BookingService, catalog *service.CatalogService) *PublicHandler {
	return &PublicHandler{Booking: booking, Catalog: catalog}
}

// GetTenantPage serves GET /api/tenants/{slug}: the data the booking page renders.
func (h *PublicHandler) GetTenantPage(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	page, err := h.Catalog.GetTenantPage(slug)
	if err != nil {
		http.Error(w, err.Error(), apperr.StatusCode(err))
		return
	}
	writeJSON(w, page)
}

// ListSlots serves GET /api/slots?professional_id=&service_id=&date=YYYY-MM-DD.
// An empty list is a normal answer: closed weekday or nothing bookable.
func (h *PublicHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	professionalID, err := uuid.Parse(r.URL.Query().Get("professional_id"))
	if err != nil {
		http.Error(w, "Invalid professional_id", http.StatusBadRequest)
		return
	}
	serviceID, err := uuid.Parse(r.URL.Query().Get("service_id"))
	if err != nil {
		http.Error(w, "Invalid service_id", http.StatusBadRequest)
		return
	}
	date := r.URL.Query().Get("date")

	slots, err := h.Booking.ListSlots(professionalID, serviceID, date)
	if err != nil {
		http.Error(w, err.Error(), apperr.StatusCode(err))
		return
	}
	writeJSON(w, map[string]interface{}{"slots": slots})
}

// CreateBooking serves POST /api/bookings: the commit step of the flow.
func (h *PublicHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	booking, err := h.Booking.CreateBooking(&req)
	if err != nil {
		http.Error(w, err.Error(), apperr.StatusCode(err))
		return
	}

	writeJSONStatus(w, http.StatusCreated, map[string]interface{}{
		"booking": booking,
		"message": "Agendamento confirmado.",
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
