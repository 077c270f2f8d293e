package service

import (
	"fmt"
	"log"
	"time"

	"agendaja/internal/db"
	"agendaja/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// CompleteFinishedBookings busca reservas confirmadas que já terminaram e
// atualiza o status para COMPLETED.
func (s *JobService) CompleteFinishedBookings() error {
	log.Println("Cron Job: Checking for bookings to mark as COMPLETED...")

	bookingIDs, err := s.Repo.GetConfirmedBookingIDsPastEndTime()
	if err != nil {
		return fmt.Errorf("cron job: failed to get confirmed bookings past end time: %w", err)
	}

	if len(bookingIDs) == 0 {
		log.Println("Cron Job: No confirmed bookings found past their end time.")
		return nil
	}

	log.Printf("Cron Job: Found %d bookings to mark as COMPLETED.", len(bookingIDs))

	err = s.Repo.UpdateBookingStatuses(bookingIDs, db.StatusCompleted)
	if err != nil {
		return fmt.Errorf("cron job: failed to update booking statuses: %w", err)
	}

	log.Printf("Cron Job: Successfully updated %d bookings to COMPLETED.", len(bookingIDs))
	return nil
}

// PurgeOldPendingBookings deletes all bookings with status PENDING created before the given time.
func (s *JobService) PurgeOldPendingBookings(before time.Time) (int64, error) {
	return s.Repo.DeletePendingBookingsOlderThan(before)
}
