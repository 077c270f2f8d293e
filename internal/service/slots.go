package service

import (
	"time"

	"agendaja/internal/db"
	"agendaja/internal/entities"
)

// Candidate slots start every 30 minutes regardless of service duration, so a
// 45-minute service still offers :00/:30 starts. Overlapping candidates can be
// shown at the same time; conflict detection lets only one be committed.
const slotStride = 30 * time.Minute

// ResolveDayWindow combines a professional's weekly schedule record with a
// calendar date and returns the working window for that day. Returns nil when
// the record is missing, inactive or empty (end <= start): "no capacity" is a
// normal outcome, not an error.
func ResolveDayWindow(avail *db.WeeklyAvailability, date time.Time) *entities.DayWindow {
	if avail == nil || !avail.IsActive {
		return nil
	}
	open, err := combineDateAndTime(date, avail.StartTime)
	if err != nil {
		return nil
	}
	close, err := combineDateAndTime(date, avail.EndTime)
	if err != nil || !close.After(open) {
		return nil
	}
	return &entities.DayWindow{Open: open, Close: close}
}

// GenerateSlots walks the day window in 30-minute steps and emits one
// fixed-duration candidate slot per step. A slot ending exactly at the window
// close is still valid. Pure: identical inputs (including now and the booking
// snapshot) always produce identical output.
//
// bookings must already be filtered to this professional and day, with
// CANCELLED excluded.
func GenerateSlots(window *entities.DayWindow, serviceDuration time.Duration, bookings []db.Booking, now time.Time) []entities.TimeSlot {
	slots := []entities.TimeSlot{}
	if window == nil || serviceDuration <= 0 {
		return slots
	}

	for cursor := window.Open; !cursor.Add(serviceDuration).After(window.Close); cursor = cursor.Add(slotStride) {
		slotEnd := cursor.Add(serviceDuration)
		isPast := cursor.Before(now)

		hasConflict := false
		for _, b := range bookings {
			// half-open intervals [a1,a2) and [b1,b2) overlap iff a1 < b2 && b1 < a2
			if cursor.Before(b.EndTime) && b.StartTime.Before(slotEnd) {
				hasConflict = true
				break
			}
		}

		slots = append(slots, entities.TimeSlot{
			Start:     cursor,
			End:       slotEnd,
			Available: !isPast && !hasConflict,
		})
	}

	return slots
}

// combineDateAndTime anchors a "15:04" time of day on the given date, in the
// date's location.
func combineDateAndTime(date time.Time, hm string) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		// algumas linhas antigas guardam segundos
		t, err = time.Parse("15:04:05", hm)
		if err != nil {
			return time.Time{}, err
		}
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}
