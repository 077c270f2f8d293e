package entities

import "github.com/google/uuid"

type BookingRequest struct {
	TenantID       uuid.UUID `json:"tenant_id"`
	ServiceID      uuid.UUID `json:"service_id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	ClientName     string    `json:"client_name"`
	ClientWhatsApp string    `json:"client_whatsapp"`
	StartTime      string    `json:"start_time"` // RFC3339
}
