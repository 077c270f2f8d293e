package entities

import "time"

// TimeSlot is one bookable candidate shown to the customer. Ephemeral: it is
// recomputed on every request, never persisted or cached.
type TimeSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

// DayWindow is the [Open, Close) interval a professional works on one
// calendar day, derived from the weekly schedule.
type DayWindow struct {
	Open  time.Time
	Close time.Time
}
