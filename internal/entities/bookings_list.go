package entities

import (
	"time"

	"github.com/google/uuid"
)

// BookingResponse is a booking joined with the catalog names the admin list shows.
type BookingResponse struct {
	ID               uuid.UUID `json:"id"`
	ServiceID        uuid.UUID `json:"service_id"`
	ServiceName      string    `json:"service_name"`
	ProfessionalID   uuid.UUID `json:"professional_id"`
	ProfessionalName string    `json:"professional_name"`
	ClientName       string    `json:"client_name"`
	ClientWhatsApp   string    `json:"client_whatsapp"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type BookingsList struct {
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
	Bookings []BookingResponse `json:"bookings"`
}
