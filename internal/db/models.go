package db

import (
	"time"

	"github.com/google/uuid"
)

// Booking status values. Stored uppercase, same values the booking page filters on.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
)

// Tenant niches
const (
	NicheSalon    = "SALON"
	NicheClinic   = "CLINIC"
	NichePetshop  = "PETSHOP"
	NichePersonal = "PERSONAL"
)

type Tenant struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Niche        string    `json:"niche"`
	PrimaryColor string    `json:"primary_color"`
	LogoURL      string    `json:"logo_url"`
	Timezone     string    `json:"timezone"`
	ContactEmail string    `json:"contact_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Service struct {
	ID              uuid.UUID `json:"id"`
	TenantID        uuid.UUID `json:"tenant_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	PriceCents      int       `json:"price_cents"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Professional struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	WhatsApp  string    `json:"whatsapp"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	IsActive  bool      `json:"is_active"`
	// IDs dos serviços que o profissional atende (tabela professional_services)
	ServiceIDs []uuid.UUID `json:"service_ids"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// WeeklyAvailability is the recurring schedule of a professional for one
// weekday. At most one row per (professional_id, day_of_week).
// StartTime/EndTime are local times of day in "15:04" format.
type WeeklyAvailability struct {
	ID             uuid.UUID `json:"id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	DayOfWeek      int       `json:"day_of_week"` // 0 = Sunday ... 6 = Saturday
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	IsActive       bool      `json:"is_active"`
}

type Booking struct {
	ID             uuid.UUID `json:"id"`
	TenantID       uuid.UUID `json:"tenant_id"`
	ServiceID      uuid.UUID `json:"service_id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	ClientName     string    `json:"client_name"`
	ClientWhatsApp string    `json:"client_whatsapp"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
