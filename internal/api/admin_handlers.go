package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"agendaja/internal/auth"
	"agendaja/internal/db"
	apperr "agendaja/internal/errors"
	"agendaja/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AdminHandler struct {
	Admin   *service.AdminService
	Booking *service.BookingService
	Catalog *service.CatalogService
}

func NewAdminHandler(admin *service.AdminService, booking *service.BookingService, catalog *service.CatalogService) *AdminHandler {
	return &AdminHandler{Admin: admin, Booking: booking, Catalog: catalog}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := auth.TenantIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	stats, err := h.Admin.GetDashboardStats(tenantID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, stats)
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := auth.TenantIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	list, err := h.Admin.ListBookings(tenantID, limit, offset)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

// UpdateBookingStatus serves PUT /admin/bookings/{id}/status with body
// {"status": "CANCELLED"|"COMPLETED"}. Cancelling notifies the client.
func (h *AdminHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := auth.TenantIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	booking, err := h.Booking.UpdateBookingStatus(tenantID, id, req.Status)
	if err != nil {
		http.Error(w, err.Error(), apperr.StatusCode(err))
		return
	}
	writeJSON(w, booking)
}

func (h *AdminHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := auth.TenantIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	services, err := h.Catalog.ListServices(tenantID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, services)
}

func (h *AdminHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := auth.TenantIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	svc := &db.Service{
		TenantID:        tenantID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		IsActive:        req.IsActive,
	}
	if err := h.Catalog.CreateService(svc); err != nil {
		http.Error(w, err.Error(), apperr.StatusCode(err))
		return
	}
	writeJSONStatus(w, http.StatusCreated, svc)
}

func (h *AdminHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := auth.TenantIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	svc := &db.Service{
		ID:              id,
		TenantID:        tenantID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		IsActive:        req.IsActive,
	}
	if err := h.Catalog.UpdateService(svc); err != nil {
		http.Error(w, "Could not update service", apperr.StatusCode(err))
		return
	}
	writeJSON(w, svc)
}

func (h *AdminHandler) ListProfessionals(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := auth.TenantIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	professionals, err := h.Catalog.ListProfessionals(tenantID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, professionals)
}

func (h *AdminHandler) CreateProfessional(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := auth.TenantIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req ProfessionalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	prof := &db.Professional{
		TenantID:   tenantID,
		Name:       req.Name,
		WhatsApp:   req.WhatsApp,
		Bio:        req.Bio,
		AvatarURL:  req.AvatarURL,
		IsActive:   req.IsActive,
		ServiceIDs: req.ServiceIDs,
	}
	if err := h.Catalog.CreateProfessional(prof); err != nil {
		http.Error(w, err.Error(), apperr.StatusCode(err))
		return
	}
	writeJSONStatus(w, http.StatusCreated, prof)
}

func (h *AdminHandler) UpdateProfessional(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := auth.TenantIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req ProfessionalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	prof := &db.Professional{
		ID:         id,
		TenantID:   tenantID,
		Name:       req.Name,
		WhatsApp:   req.WhatsApp,
		Bio:        req.Bio,
		AvatarURL:  req.AvatarURL,
		IsActive:   req.IsActive,
		ServiceIDs: req.ServiceIDs,
	}
	if err := h.Catalog.UpdateProfessional(prof); err != nil {
		http.Error(w, "Could not update professional", apperr.StatusCode(err))
		return
	}
	writeJSON(w, prof)
}

func (h *AdminHandler) GetWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := auth.TenantIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	professionalID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	schedule, err := h.Catalog.GetWeeklySchedule(tenantID, professionalID)
	if err != nil {
		http.Error(w, err.Error(), apperr.StatusCode(err))
		return
	}
	writeJSON(w, schedule)
}

func (h *AdminHandler) ReplaceWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := auth.TenantIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	professionalID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var entries []ScheduleEntry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	schedule := make([]db.WeeklyAvailability, 0, len(entries))
	for _, e := range entries {
		schedule = append(schedule, db.WeeklyAvailability{
			DayOfWeek: e.DayOfWeek,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			IsActive:  e.IsActive,
		})
	}

	if err := h.Catalog.ReplaceWeeklySchedule(tenantID, professionalID, schedule); err != nil {
		http.Error(w, err.Error(), apperr.StatusCode(err))
		return
	}
	writeJSON(w, map[string]string{"message": "Schedule updated"})
}
