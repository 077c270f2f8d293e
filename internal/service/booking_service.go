package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"agendaja/internal/db"
	"agendaja/internal/entities"
	apperr "agendaja/internal/errors"
	"agendaja/internal/utils"

	"github.com/google/uuid"
)

type CatalogStore interface {
	GetTenantByID(id uuid.UUID) (*db.Tenant, error)
	GetService(id uuid.UUID) (*db.Service, error)
	GetProfessional(id uuid.UUID) (*db.Professional, error)
}

type AvailabilityStore interface {
	GetWeeklyAvailability(professionalID uuid.UUID, dayOfWeek int) (*db.WeeklyAvailability, error)
}

type BookingStore interface {
	CreateBooking(b *db.Booking) error
	ListForProfessionalDay(professionalID uuid.UUID, dayStart, dayEnd time.Time) ([]db.Booking, error)
	GetBookingByID(id uuid.UUID) (*db.Booking, error)
	UpdateBookingStatus(id uuid.UUID, status string) error
}

// BookingNotifier is fire-and-forget: implementations must never block the
// booking flow or report an error back into it.
type BookingNotifier interface {
	NotifyConfirmation(b *db.Booking, svc *db.Service, prof *db.Professional, tenant *db.Tenant)
	NotifyCancellation(b *db.Booking, svc *db.Service, tenant *db.Tenant)
}

type BookingService struct {
	catalog      CatalogStore
	availability AvailabilityStore
	bookings     BookingStore
	notifier     BookingNotifier
	now          func() time.Time
}

func NewBookingService(catalog CatalogStore, availability AvailabilityStore, bookings BookingStore, notifier BookingNotifier) *BookingService {
	return &BookingService{
		catalog:      catalog,
		availability: availability,
		bookings:     bookings,
		notifier:     notifier,
		now:          time.Now,
	}
}

// ListSlots computes the bookable slots for a professional/service on one
// calendar day, in the tenant's timezone. An empty list is a valid outcome
// (closed weekday, window shorter than the service, nothing left today).
func (s *BookingService) ListSlots(professionalID, serviceID uuid.UUID, dateStr string) ([]entities.TimeSlot, error) {
	svc, err := s.catalog.GetService(serviceID)
	if err != nil {
		return nil, fmt.Errorf("fetching service: %w", err)
	}
	if svc == nil {
		return nil, apperr.NewNotFound("service not found")
	}

	prof, err := s.catalog.GetProfessional(professionalID)
	if err != nil {
		return nil, fmt.Errorf("fetching professional: %w", err)
	}
	if prof == nil {
		return nil, apperr.NewNotFound("professional not found")
	}

	loc, err := s.tenantLocation(prof.TenantID)
	if err != nil {
		return nil, err
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return nil, apperr.NewValidation("date must be YYYY-MM-DD")
	}

	avail, err := s.availability.GetWeeklyAvailability(professionalID, int(date.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("fetching availability: %w", err)
	}

	window := ResolveDayWindow(avail, date)
	if window == nil {
		return []entities.TimeSlot{}, nil
	}

	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)
	existing, err := s.bookings.ListForProfessionalDay(professionalID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("fetching bookings: %w", err)
	}

	duration := time.Duration(svc.DurationMinutes) * time.Minute
	return GenerateSlots(window, duration, existing, s.now()), nil
}

// CreateBooking commits a previously generated slot. The end time is always
// recomputed from the service's current duration; a client-supplied end is
// ignored. The store rejects overlapping non-cancelled bookings for the same
// professional, so under concurrent requests at most one commit wins and the
// loser gets a ConflictError.
func (s *BookingService) CreateBooking(req *entities.BookingRequest) (*db.Booking, error) {
	clientName := strings.TrimSpace(req.ClientName)
	if clientName == "" {
		return nil, apperr.NewValidation("client_name is required")
	}

	whatsapp, err := utils.NormalizeWhatsApp(req.ClientWhatsApp)
	if err != nil {
		return nil, apperr.NewValidation("client_whatsapp is invalid")
	}

	svc, err := s.catalog.GetService(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("fetching service: %w", err)
	}
	if svc == nil {
		return nil, apperr.NewNotFound("service not found")
	}
	if svc.DurationMinutes <= 0 {
		return nil, apperr.NewValidation("service has no valid duration")
	}

	prof, err := s.catalog.GetProfessional(req.ProfessionalID)
	if err != nil {
		return nil, fmt.Errorf("fetching professional: %w", err)
	}
	if prof == nil || prof.TenantID != req.TenantID {
		return nil, apperr.NewNotFound("professional not found")
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, apperr.NewValidation("start_time must be RFC3339")
	}

	booking := &db.Booking{
		ID:             uuid.New(),
		TenantID:       req.TenantID,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		ClientName:     clientName,
		ClientWhatsApp: whatsapp,
		StartTime:      start,
		EndTime:        start.Add(time.Duration(svc.DurationMinutes) * time.Minute),
		Status:         db.StatusConfirmed,
		CreatedAt:      s.now().UTC(),
		UpdatedAt:      s.now().UTC(),
	}

	if err := s.bookings.CreateBooking(booking); err != nil {
		return nil, err
	}

	if tenant, terr := s.catalog.GetTenantByID(req.TenantID); terr == nil && tenant != nil {
		s.notifier.NotifyConfirmation(booking, svc, prof, tenant)
	} else if terr != nil {
		log.Printf("ALERTA: reserva %s criada, mas falhou a busca do tenant para notificação: %v", booking.ID, terr)
	}

	return booking, nil
}

// UpdateBookingStatus handles the administrative CANCELLED/COMPLETED
// transitions, scoped to the admin's tenant. Cancelling triggers the WhatsApp
// cancellation message.
func (s *BookingService) UpdateBookingStatus(tenantID, id uuid.UUID, status string) (*db.Booking, error) {
	if status != db.StatusCancelled && status != db.StatusCompleted {
		return nil, apperr.NewValidation("status must be CANCELLED or COMPLETED")
	}

	booking, err := s.bookings.GetBookingByID(id)
	if err != nil {
		return nil, fmt.Errorf("fetching booking: %w", err)
	}
	if booking == nil || booking.TenantID != tenantID {
		return nil, apperr.NewNotFound("booking not found")
	}

	if err := s.bookings.UpdateBookingStatus(id, status); err != nil {
		return nil, fmt.Errorf("updating booking status: %w", err)
	}
	booking.Status = status

	if status == db.StatusCancelled {
		svc, serr := s.catalog.GetService(booking.ServiceID)
		tenant, terr := s.catalog.GetTenantByID(booking.TenantID)
		if serr == nil && terr == nil && svc != nil && tenant != nil {
			s.notifier.NotifyCancellation(booking, svc, tenant)
		} else {
			log.Printf("ALERTA: reserva %s cancelada, mas falhou a notificação do cliente", booking.ID)
		}
	}

	return booking, nil
}

func (s *BookingService) tenantLocation(tenantID uuid.UUID) (*time.Location, error) {
	tenant, err := s.catalog.GetTenantByID(tenantID)
	if err != nil {
		return nil, fmt.Errorf("fetching tenant: %w", err)
	}
	if tenant == nil {
		return nil, apperr.NewNotFound("tenant not found")
	}
	loc, err := time.LoadLocation(tenant.Timezone)
	if err != nil {
		log.Printf("ALERTA: timezone inválido %q para tenant %s, usando UTC", tenant.Timezone, tenant.ID)
		return time.UTC, nil
	}
	return loc, nil
}
