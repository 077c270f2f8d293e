package api

import (
	"encoding/json"
	"net/http"

	apperr "agendaja/internal/errors"
	"agendaja/internal/service"
)

type AdminAuthHandler struct {
	service service.AdminAuthService
	catalog *service.CatalogService
}

func NewAdminAuthHandler(svc service.AdminAuthService, catalog *service.CatalogService) *AdminAuthHandler {
	return &AdminAuthHandler{service: svc, catalog: catalog}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	writeJSON(w, LoginResponse{Token: token})
}

// Signup creates the tenant and its first admin account in one step, the way
// the signup page submits it.
func (h *AdminAuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tenant, err := h.catalog.CreateTenant(req.BusinessName, req.Slug, req.Niche)
	if err != nil {
		http.Error(w, err.Error(), apperr.StatusCode(err))
		return
	}

	if err := h.service.CreateAdmin(req.Email, req.Password, tenant.ID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONStatus(w, http.StatusCreated, SignupResponse{TenantID: tenant.ID, Slug: tenant.Slug, Message: "Conta criada com sucesso"})
}
