package api

import "github.com/google/uuid"

// Signup
type SignupRequest struct {
	BusinessName string `json:"business_name"`
	Slug         string `json:"slug"`
	Niche        string `json:"niche"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}
type SignupResponse struct {
	TenantID uuid.UUID `json:"tenant_id"`
	Slug     string    `json:"slug"`
	Message  string    `json:"message"`
}

// Catalog
type ServiceRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int    `json:"price_cents"`
	IsActive        bool   `json:"is_active"`
}

type ProfessionalRequest struct {
	Name       string      `json:"name"`
	WhatsApp   string      `json:"whatsapp"`
	Bio        string      `json:"bio"`
	AvatarURL  string      `json:"avatar_url"`
	IsActive   bool        `json:"is_active"`
	ServiceIDs []uuid.UUID `json:"service_ids"`
}

// Weekly schedule editor payload: one entry per weekday the admin touched.
type ScheduleEntry struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
}
