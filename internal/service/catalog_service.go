package service

import (
	"fmt"
	"strings"
	"time"

	"agendaja/internal/db"
	"agendaja/internal/entities"
	apperr "agendaja/internal/errors"
	"agendaja/internal/repository"

	"github.com/google/uuid"
)

type CatalogService struct {
	Repo             *repository.CatalogRepository
	AvailabilityRepo *repository.AvailabilityRepository
}

func NewCatalogService(repo *repository.CatalogRepository, availabilityRepo *repository.AvailabilityRepository) *CatalogService {
	return &CatalogService{Repo: repo, AvailabilityRepo: availabilityRepo}
}

// GetTenantPage returns everything the public booking page renders: the
// tenant plus its active services and professionals.
func (s *CatalogService) GetTenantPage(slug string) (*entities.TenantPage, error) {
	tenant, err := s.Repo.GetTenantBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("fetching tenant: %w", err)
	}
	if tenant == nil {
		return nil, apperr.NewNotFound("tenant not found")
	}

	services, err := s.Repo.ListServices(tenant.ID, true)
	if err != nil {
		return nil, fmt.Errorf("fetching services: %w", err)
	}
	professionals, err := s.Repo.ListProfessionals(tenant.ID, true)
	if err != nil {
		return nil, fmt.Errorf("fetching professionals: %w", err)
	}

	return &entities.TenantPage{Tenant: tenant, Services: services, Professionals: professionals}, nil
}

func (s *CatalogService) CreateTenant(name, slug, niche string) (*db.Tenant, error) {
	name = strings.TrimSpace(name)
	slug = strings.ToLower(strings.TrimSpace(slug))
	if name == "" || slug == "" {
		return nil, apperr.NewValidation("name and slug are required")
	}
	switch niche {
	case db.NicheSalon, db.NicheClinic, db.NichePetshop, db.NichePersonal:
	default:
		return nil, apperr.NewValidation("invalid niche")
	}

	existing, err := s.Repo.GetTenantBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("checking slug: %w", err)
	}
	if existing != nil {
		return nil, apperr.NewConflict("slug already in use")
	}

	tenant := &db.Tenant{
		ID:           uuid.New(),
		Name:         name,
		Slug:         slug,
		Niche:        niche,
		PrimaryColor: "#4F46E5",
		Timezone:     "America/Sao_Paulo",
	}
	if err := s.Repo.CreateTenant(tenant); err != nil {
		return nil, fmt.Errorf("creating tenant: %w", err)
	}
	return tenant, nil
}

func (s *CatalogService) ListServices(tenantID uuid.UUID) ([]db.Service, error) {
	return s.Repo.ListServices(tenantID, false)
}

func (s *CatalogService) CreateService(svc *db.Service) error {
	if err := validateService(svc); err != nil {
		return err
	}
	svc.ID = uuid.New()
	return s.Repo.CreateService(svc)
}

func (s *CatalogService) UpdateService(svc *db.Service) error {
	if err := validateService(svc); err != nil {
		return err
	}
	return s.Repo.UpdateService(svc)
}

func (s *CatalogService) ListProfessionals(tenantID uuid.UUID) ([]db.Professional, error) {
	return s.Repo.ListProfessionals(tenantID, false)
}

func (s *CatalogService) CreateProfessional(p *db.Professional) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperr.NewValidation("name is required")
	}
	p.ID = uuid.New()
	return s.Repo.CreateProfessional(p)
}

func (s *CatalogService) UpdateProfessional(p *db.Professional) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperr.NewValidation("name is required")
	}
	return s.Repo.UpdateProfessional(p)
}

func (s *CatalogService) GetWeeklySchedule(tenantID, professionalID uuid.UUID) ([]db.WeeklyAvailability, error) {
	if err := s.checkProfessionalTenant(tenantID, professionalID); err != nil {
		return nil, err
	}
	return s.AvailabilityRepo.ListWeeklyAvailability(professionalID)
}

// ReplaceWeeklySchedule saves the 7-day recurring schedule the admin editor
// submits wholesale. Each entry must reference a distinct weekday.
func (s *CatalogService) ReplaceWeeklySchedule(tenantID, professionalID uuid.UUID, entries []db.WeeklyAvailability) error {
	if err := s.checkProfessionalTenant(tenantID, professionalID); err != nil {
		return err
	}

	seen := map[int]bool{}
	for _, e := range entries {
		if e.DayOfWeek < 0 || e.DayOfWeek > 6 {
			return apperr.NewValidation("day_of_week must be between 0 and 6")
		}
		if seen[e.DayOfWeek] {
			return apperr.NewValidation("duplicate day_of_week")
		}
		seen[e.DayOfWeek] = true
		if _, err := time.Parse("15:04", e.StartTime); err != nil {
			return apperr.NewValidation("start_time must be HH:MM")
		}
		if _, err := time.Parse("15:04", e.EndTime); err != nil {
			return apperr.NewValidation("end_time must be HH:MM")
		}
	}

	return s.AvailabilityRepo.ReplaceWeeklySchedule(professionalID, entries)
}

func (s *CatalogService) checkProfessionalTenant(tenantID, professionalID uuid.UUID) error {
	prof, err := s.Repo.GetProfessional(professionalID)
	if err != nil {
		return fmt.Errorf("fetching professional: %w", err)
	}
	if prof == nil || prof.TenantID != tenantID {
		return apperr.NewNotFound("professional not found")
	}
	return nil
}

func validateService(svc *db.Service) error {
	if strings.TrimSpace(svc.Name) == "" {
		return apperr.NewValidation("name is required")
	}
	if svc.DurationMinutes <= 0 {
		return apperr.NewValidation("duration must be positive")
	}
	if svc.PriceCents < 0 {
		return apperr.NewValidation("price cannot be negative")
	}
	return nil
}
