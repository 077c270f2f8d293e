package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"agendaja/internal/db"

	"github.com/google/uuid"
)

type AvailabilityRepository struct {
	DB *sql.DB
}

func NewAvailabilityRepository(database *sql.DB) *AvailabilityRepository {
	return &AvailabilityRepository{DB: database}
}

// GetWeeklyAvailability returns the schedule record for one weekday, or nil
// when the professional has none. Missing record means zero capacity, so the
// caller must not treat nil as an error.
func (r *AvailabilityRepository) GetWeeklyAvailability(professionalID uuid.UUID, dayOfWeek int) (*db.WeeklyAvailability, error) {
	var a db.WeeklyAvailability
	query := `
		SELECT id, professional_id, day_of_week, start_time, end_time, is_active
		FROM weekly_availability
		WHERE professional_id = $1 AND day_of_week = $2`
	err := r.DB.QueryRow(query, professionalID, dayOfWeek).Scan(
		&a.ID, &a.ProfessionalID, &a.DayOfWeek, &a.StartTime, &a.EndTime, &a.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying weekly availability: %w", err)
	}
	return &a, nil
}

func (r *AvailabilityRepository) ListWeeklyAvailability(professionalID uuid.UUID) ([]db.WeeklyAvailability, error) {
	query := `
		SELECT id, professional_id, day_of_week, start_time, end_time, is_active
		FROM weekly_availability
		WHERE professional_id = $1
		ORDER BY day_of_week`
	rows, err := r.DB.Query(query, professionalID)
	if err != nil {
		return nil, fmt.Errorf("error querying weekly availability: %w", err)
	}
	defer rows.Close()

	var schedule []db.WeeklyAvailability
	for rows.Next() {
		var a db.WeeklyAvailability
		if err := rows.Scan(&a.ID, &a.ProfessionalID, &a.DayOfWeek, &a.StartTime, &a.EndTime, &a.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning weekly availability: %w", err)
		}
		schedule = append(schedule, a)
	}
	return schedule, rows.Err()
}

// ReplaceWeeklySchedule upserts the whole 7-day schedule of a professional in
// one transaction, the way the admin schedule editor saves it.
func (r *AvailabilityRepository) ReplaceWeeklySchedule(professionalID uuid.UUID, entries []db.WeeklyAvailability) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO weekly_availability (id, professional_id, day_of_week, start_time, end_time, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (professional_id, day_of_week)
		DO UPDATE SET start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time, is_active = EXCLUDED.is_active`
	for _, e := range entries {
		if _, err := tx.Exec(query, uuid.New(), professionalID, e.DayOfWeek, e.StartTime, e.EndTime, e.IsActive); err != nil {
			return fmt.Errorf("error upserting weekday %d: %w", e.DayOfWeek, err)
		}
	}
	return tx.Commit()
}
