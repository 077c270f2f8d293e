package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"agendaja/internal/db"
	"agendaja/internal/entities"
	apperr "agendaja/internal/errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Postgres error code raised by the bookings_no_overlap exclusion constraint.
const exclusionViolation = "23P01"

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

// CreateBooking inserts a CONFIRMED booking. The slot list the client saw may
// be stale, so the overlap check runs again inside the transaction, and the
// bookings_no_overlap exclusion constraint is the final arbiter under
// concurrent inserts: whichever commit loses gets a ConflictError.
func (r *BookingRepository) CreateBooking(b *db.Booking) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting booking transaction: %w", err)
	}
	defer tx.Rollback()

	var conflicts int
	err = tx.QueryRow(`
		SELECT COUNT(*)
		FROM bookings
		WHERE professional_id = $1
		  AND status <> 'CANCELLED'
		  AND start_time < $3
		  AND end_time > $2`,
		b.ProfessionalID, b.StartTime, b.EndTime,
	).Scan(&conflicts)
	if err != nil {
		return fmt.Errorf("error re-checking slot overlap: %w", err)
	}
	if conflicts > 0 {
		return apperr.NewConflict("slot is no longer available")
	}

	query := `
		INSERT INTO bookings
		(id, tenant_id, service_id, professional_id, client_name, client_whatsapp, start_time, end_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`
	err = tx.QueryRow(query,
		b.ID, b.TenantID, b.ServiceID, b.ProfessionalID,
		b.ClientName, b.ClientWhatsApp,
		b.StartTime, b.EndTime, b.Status,
		b.CreatedAt, b.UpdatedAt,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == exclusionViolation {
			return apperr.NewConflict("slot is no longer available")
		}
		return fmt.Errorf("error inserting booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == exclusionViolation {
			return apperr.NewConflict("slot is no longer available")
		}
		return fmt.Errorf("error committing booking: %w", err)
	}
	return nil
}

// ListForProfessionalDay returns the non-cancelled bookings of a professional
// inside [dayStart, dayEnd), the snapshot the slot generator checks against.
func (r *BookingRepository) ListForProfessionalDay(professionalID uuid.UUID, dayStart, dayEnd time.Time) ([]db.Booking, error) {
	query := `
		SELECT id, tenant_id, service_id, professional_id, client_name, client_whatsapp, start_time, end_time, status, created_at, updated_at
		FROM bookings
		WHERE professional_id = $1
		  AND status <> 'CANCELLED'
		  AND start_time >= $2
		  AND start_time < $3
		ORDER BY start_time`
	rows, err := r.DB.Query(query, professionalID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings for day: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		var b db.Booking
		err := rows.Scan(
			&b.ID, &b.TenantID, &b.ServiceID, &b.ProfessionalID,
			&b.ClientName, &b.ClientWhatsApp,
			&b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) GetBookingByID(id uuid.UUID) (*db.Booking, error) {
	var b db.Booking
	query := `
		SELECT id, tenant_id, service_id, professional_id, client_name, client_whatsapp, start_time, end_time, status, created_at, updated_at
		FROM bookings WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&b.ID, &b.TenantID, &b.ServiceID, &b.ProfessionalID,
		&b.ClientName, &b.ClientWhatsApp,
		&b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) UpdateBookingStatus(id uuid.UUID, status string) error {
	result, err := r.DB.Exec(`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating booking status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListByTenant returns the tenant's bookings joined with catalog names,
// ordered by start time, for the admin list.
func (r *BookingRepository) ListByTenant(tenantID uuid.UUID, limit, offset int) (*entities.BookingsList, error) {
	var total int64
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM bookings WHERE tenant_id = $1`, tenantID).Scan(&total); err != nil {
		return nil, fmt.Errorf("error counting bookings: %w", err)
	}

	query := `
		SELECT
			b.id, b.service_id, s.name AS service_name,
			b.professional_id, p.name AS professional_name,
			b.client_name, b.client_whatsapp,
			b.start_time, b.end_time, b.status, b.created_at
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		JOIN professionals p ON p.id = b.professional_id
		WHERE b.tenant_id = $1
		ORDER BY b.start_time
		LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error querying tenant bookings: %w", err)
	}
	defer rows.Close()

	list := &entities.BookingsList{Total: total, Limit: limit, Offset: offset, Bookings: []entities.BookingResponse{}}
	for rows.Next() {
		var b entities.BookingResponse
		err := rows.Scan(
			&b.ID, &b.ServiceID, &b.ServiceName,
			&b.ProfessionalID, &b.ProfessionalName,
			&b.ClientName, &b.ClientWhatsApp,
			&b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning tenant booking: %w", err)
		}
		list.Bookings = append(list.Bookings, b)
	}
	return list, rows.Err()
}

// GetDashboardStats computes the admin dashboard counters. Expected revenue
// sums the service price over bookings not cancelled.
func (r *BookingRepository) GetDashboardStats(tenantID uuid.UUID) (*entities.DashboardStats, error) {
	var stats entities.DashboardStats
	query := `
		SELECT
			(SELECT COUNT(*) FROM bookings WHERE tenant_id = $1),
			(SELECT COALESCE(SUM(s.price_cents), 0)
			 FROM bookings b JOIN services s ON s.id = b.service_id
			 WHERE b.tenant_id = $1 AND b.status <> 'CANCELLED'),
			(SELECT COUNT(*) FROM services WHERE tenant_id = $1 AND is_active),
			(SELECT COUNT(*) FROM professionals WHERE tenant_id = $1 AND is_active)`
	err := r.DB.QueryRow(query, tenantID).Scan(
		&stats.TotalBookings, &stats.ExpectedRevenueCents, &stats.ActiveServices, &stats.ActiveProfessionals,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying dashboard stats: %w", err)
	}
	return &stats, nil
}
