package entities

// DashboardStats is the admin dashboard summary for one tenant.
// ExpectedRevenueCents sums service prices over non-cancelled bookings.
type DashboardStats struct {
	TotalBookings        int64 `json:"total_bookings"`
	ExpectedRevenueCents int64 `json:"expected_revenue_cents"`
	ActiveServices       int64 `json:"active_services"`
	ActiveProfessionals  int64 `json:"active_professionals"`
}
