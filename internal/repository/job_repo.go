package repository

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// GetConfirmedBookingIDsPastEndTime busca reservas confirmadas cujo horário já terminou.
func (r *JobRepository) GetConfirmedBookingIDsPastEndTime() ([]uuid.UUID, error) {
	query := `SELECT id FROM bookings WHERE status = 'CONFIRMED' AND end_time < NOW()`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying confirmed bookings past end time: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning booking ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// UpdateBookingStatuses atualiza o status de uma lista de reservas.
func (r *JobRepository) UpdateBookingStatuses(ids []uuid.UUID, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = ANY($2)`
	result, err := r.DB.Exec(query, newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating booking statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d bookings to '%s'", rowsAffected, newStatus)
	}
	return nil
}

// DeletePendingBookingsOlderThan remove reservas pendentes antigas (linhas
// importadas ou legadas; o fluxo de commit cria direto como CONFIRMED).
func (r *JobRepository) DeletePendingBookingsOlderThan(before time.Time) (int64, error) {
	result, err := r.DB.Exec(`DELETE FROM bookings WHERE status = 'PENDING' AND created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("error deleting old pending bookings: %w", err)
	}
	return result.RowsAffected()
}
