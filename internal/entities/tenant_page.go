package entities

import "agendaja/internal/db"

// TenantPage is everything the public booking page needs to render.
type TenantPage struct {
	Tenant        *db.Tenant        `json:"tenant"`
	Services      []db.Service      `json:"services"`
	Professionals []db.Professional `json:"professionals"`
}
