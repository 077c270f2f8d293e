package service

import (
	"agendaja/internal/entities"
	"agendaja/internal/repository"

	"github.com/google/uuid"
)

type AdminService struct {
	bookingRepo *repository.BookingRepository
}

func NewAdminService(bookingRepo *repository.BookingRepository) *AdminService {
	return &AdminService{bookingRepo: bookingRepo}
}

func (s *AdminService) ListBookings(tenantID uuid.UUID, limit, offset int) (*entities.BookingsList, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.bookingRepo.ListByTenant(tenantID, limit, offset)
}

func (s *AdminService) GetDashboardStats(tenantID uuid.UUID) (*entities.DashboardStats, error) {
	return s.bookingRepo.GetDashboardStats(tenantID)
}
