package service

import (
	"testing"
	"time"

	"agendaja/internal/db"
	"agendaja/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// March 2nd 2026 is a Monday.
var monday = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

func mondayAt(hour, min int) time.Time {
	return time.Date(2026, time.March, 2, hour, min, 0, 0, time.UTC)
}

func workingMonday() *db.WeeklyAvailability {
	return &db.WeeklyAvailability{
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "18:00",
		IsActive:  true,
	}
}

func TestResolveDayWindow(t *testing.T) {
	t.Run("active record", func(t *testing.T) {
		window := ResolveDayWindow(workingMonday(), monday)
		require.NotNil(t, window)
		assert.Equal(t, mondayAt(9, 0), window.Open)
		assert.Equal(t, mondayAt(18, 0), window.Close)
	})

	t.Run("missing record means no capacity", func(t *testing.T) {
		assert.Nil(t, ResolveDayWindow(nil, monday))
	})

	t.Run("inactive weekday means no capacity", func(t *testing.T) {
		avail := workingMonday()
		avail.IsActive = false
		assert.Nil(t, ResolveDayWindow(avail, monday))
	})

	t.Run("empty window is treated as no capacity", func(t *testing.T) {
		avail := workingMonday()
		avail.EndTime = "09:00"
		assert.Nil(t, ResolveDayWindow(avail, monday))

		avail.EndTime = "08:00"
		assert.Nil(t, ResolveDayWindow(avail, monday))
	})

	t.Run("malformed time means no capacity", func(t *testing.T) {
		avail := workingMonday()
		avail.StartTime = "9h00"
		assert.Nil(t, ResolveDayWindow(avail, monday))
	})

	t.Run("accepts legacy HH:MM:SS rows", func(t *testing.T) {
		avail := workingMonday()
		avail.StartTime = "09:00:00"
		avail.EndTime = "18:00:00"
		window := ResolveDayWindow(avail, monday)
		require.NotNil(t, window)
		assert.Equal(t, mondayAt(9, 0), window.Open)
	})
}

func TestGenerateSlotsFullDayNoBookings(t *testing.T) {
	window := ResolveDayWindow(workingMonday(), monday)
	now := mondayAt(8, 0)

	slots := GenerateSlots(window, time.Hour, nil, now)

	// 09:00 to 17:00 inclusive, every 30 minutes
	require.Len(t, slots, 17)
	assert.Equal(t, entities.TimeSlot{Start: mondayAt(9, 0), End: mondayAt(10, 0), Available: true}, slots[0])
	assert.Equal(t, entities.TimeSlot{Start: mondayAt(17, 0), End: mondayAt(18, 0), Available: true}, slots[16])

	for i, slot := range slots {
		assert.True(t, slot.Available, "slot %d should be available", i)
		assert.Equal(t, time.Hour, slot.End.Sub(slot.Start))
		assert.False(t, slot.End.After(window.Close), "slot %d must not pass the window close", i)
		if i > 0 {
			assert.Equal(t, 30*time.Minute, slot.Start.Sub(slots[i-1].Start))
		}
	}
}

func TestGenerateSlotsMarksConflicts(t *testing.T) {
	window := ResolveDayWindow(workingMonday(), monday)
	now := mondayAt(8, 0)
	existing := []db.Booking{
		{StartTime: mondayAt(10, 0), EndTime: mondayAt(11, 0), Status: db.StatusConfirmed},
	}

	slots := GenerateSlots(window, time.Hour, existing, now)
	require.Len(t, slots, 17)

	byStart := map[time.Time]bool{}
	for _, s := range slots {
		byStart[s.Start] = s.Available
	}

	// every candidate overlapping [10:00, 11:00) is blocked
	assert.False(t, byStart[mondayAt(9, 30)])
	assert.False(t, byStart[mondayAt(10, 0)])
	assert.False(t, byStart[mondayAt(10, 30)])

	// touching boundaries is fine: [9:00,10:00) and [11:00,12:00) don't overlap
	assert.True(t, byStart[mondayAt(9, 0)])
	assert.True(t, byStart[mondayAt(11, 0)])
}

func TestGenerateSlotsPastSlotsUnavailable(t *testing.T) {
	window := ResolveDayWindow(workingMonday(), monday)
	now := mondayAt(12, 15)

	slots := GenerateSlots(window, time.Hour, nil, now)
	require.Len(t, slots, 17)

	for _, s := range slots {
		if s.Start.Before(now) {
			assert.False(t, s.Available, "slot at %v started in the past", s.Start)
		} else {
			assert.True(t, s.Available, "slot at %v is in the future", s.Start)
		}
	}
	// 12:00 already started, 12:30 has not
	assert.False(t, slots[6].Available)
	assert.True(t, slots[7].Available)
}

func TestGenerateSlotsBoundary(t *testing.T) {
	now := mondayAt(8, 0)

	t.Run("slot ending exactly at close is emitted", func(t *testing.T) {
		window := &entities.DayWindow{Open: mondayAt(9, 0), Close: mondayAt(10, 0)}
		slots := GenerateSlots(window, time.Hour, nil, now)
		require.Len(t, slots, 1)
		assert.Equal(t, mondayAt(10, 0), slots[0].End)
		assert.True(t, slots[0].Available)
	})

	t.Run("slot passing close by one minute is not", func(t *testing.T) {
		window := &entities.DayWindow{Open: mondayAt(9, 0), Close: mondayAt(9, 59)}
		slots := GenerateSlots(window, time.Hour, nil, now)
		assert.Empty(t, slots)
	})

	t.Run("second candidate passing close is cut", func(t *testing.T) {
		window := &entities.DayWindow{Open: mondayAt(9, 0), Close: mondayAt(10, 29)}
		slots := GenerateSlots(window, time.Hour, nil, now)
		require.Len(t, slots, 1)
		assert.Equal(t, mondayAt(9, 0), slots[0].Start)
	})
}

func TestGenerateSlotsNilWindow(t *testing.T) {
	slots := GenerateSlots(nil, time.Hour, nil, mondayAt(8, 0))
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	window := ResolveDayWindow(workingMonday(), monday)
	now := mondayAt(8, 0)
	existing := []db.Booking{
		{StartTime: mondayAt(14, 0), EndTime: mondayAt(15, 30), Status: db.StatusConfirmed},
	}

	first := GenerateSlots(window, 45*time.Minute, existing, now)
	second := GenerateSlots(window, 45*time.Minute, existing, now)
	assert.Equal(t, first, second)
}
