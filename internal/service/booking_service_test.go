package service

import (
	"sync"
	"testing"
	"time"

	"agendaja/internal/db"
	"agendaja/internal/entities"
	apperr "agendaja/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	tenants       map[uuid.UUID]*db.Tenant
	services      map[uuid.UUID]*db.Service
	professionals map[uuid.UUID]*db.Professional
}

func (f *fakeCatalog) GetTenantByID(id uuid.UUID) (*db.Tenant, error) { return f.tenants[id], nil }
func (f *fakeCatalog) GetService(id uuid.UUID) (*db.Service, error)   { return f.services[id], nil }
func (f *fakeCatalog) GetProfessional(id uuid.UUID) (*db.Professional, error) {
	return f.professionals[id], nil
}

type fakeAvailability struct {
	byWeekday map[int]*db.WeeklyAvailability
}

func (f *fakeAvailability) GetWeeklyAvailability(_ uuid.UUID, dayOfWeek int) (*db.WeeklyAvailability, error) {
	return f.byWeekday[dayOfWeek], nil
}

// fakeBookingStore enforces the same no-overlap guarantee the Postgres
// exclusion constraint gives, serialized under a mutex.
type fakeBookingStore struct {
	mu       sync.Mutex
	bookings []db.Booking
}

func (f *fakeBookingStore) CreateBooking(b *db.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.bookings {
		if existing.ProfessionalID == b.ProfessionalID &&
			existing.Status != db.StatusCancelled &&
			b.StartTime.Before(existing.EndTime) && existing.StartTime.Before(b.EndTime) {
			return apperr.NewConflict("slot is no longer available")
		}
	}
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeBookingStore) ListForProfessionalDay(professionalID uuid.UUID, dayStart, dayEnd time.Time) ([]db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Booking
	for _, b := range f.bookings {
		if b.ProfessionalID == professionalID && b.Status != db.StatusCancelled &&
			!b.StartTime.Before(dayStart) && b.StartTime.Before(dayEnd) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) GetBookingByID(id uuid.UUID) (*db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingStore) UpdateBookingStatus(id uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Status = status
			return nil
		}
	}
	return nil
}

type fakeNotifier struct {
	mu            sync.Mutex
	confirmations int
	cancellations int
}

func (f *fakeNotifier) NotifyConfirmation(*db.Booking, *db.Service, *db.Professional, *db.Tenant) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmations++
}

func (f *fakeNotifier) NotifyCancellation(*db.Booking, *db.Service, *db.Tenant) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancellations++
}

type fixture struct {
	svc      *BookingService
	store    *fakeBookingStore
	notifier *fakeNotifier

	tenantID       uuid.UUID
	serviceID      uuid.UUID
	professionalID uuid.UUID
}

func newFixture(t *testing.T, avail *db.WeeklyAvailability) *fixture {
	t.Helper()

	tenantID := uuid.New()
	serviceID := uuid.New()
	professionalID := uuid.New()

	catalog := &fakeCatalog{
		tenants: map[uuid.UUID]*db.Tenant{
			tenantID: {ID: tenantID, Name: "Studio Glow", Slug: "studio-glow", Timezone: "UTC"},
		},
		services: map[uuid.UUID]*db.Service{
			serviceID: {ID: serviceID, TenantID: tenantID, Name: "Corte", DurationMinutes: 60, IsActive: true},
		},
		professionals: map[uuid.UUID]*db.Professional{
			professionalID: {ID: professionalID, TenantID: tenantID, Name: "Ana", IsActive: true},
		},
	}

	availability := &fakeAvailability{byWeekday: map[int]*db.WeeklyAvailability{}}
	if avail != nil {
		availability.byWeekday[avail.DayOfWeek] = avail
	}

	store := &fakeBookingStore{}
	notifier := &fakeNotifier{}

	svc := NewBookingService(catalog, availability, store, notifier)
	svc.now = func() time.Time { return mondayAt(8, 0) }

	return &fixture{
		svc:            svc,
		store:          store,
		notifier:       notifier,
		tenantID:       tenantID,
		serviceID:      serviceID,
		professionalID: professionalID,
	}
}

func (f *fixture) bookingRequest(start time.Time) *entities.BookingRequest {
	return &entities.BookingRequest{
		TenantID:       f.tenantID,
		ServiceID:      f.serviceID,
		ProfessionalID: f.professionalID,
		ClientName:     "João Souza",
		ClientWhatsApp: "+55 (11) 98765-4321",
		StartTime:      start.Format(time.RFC3339),
	}
}

func TestListSlotsHappyPath(t *testing.T) {
	f := newFixture(t, workingMonday())

	slots, err := f.svc.ListSlots(f.professionalID, f.serviceID, "2026-03-02")
	require.NoError(t, err)
	require.Len(t, slots, 17)
	assert.Equal(t, mondayAt(9, 0), slots[0].Start)
	assert.True(t, slots[0].Available)
}

func TestListSlotsInactiveWeekdayReturnsEmpty(t *testing.T) {
	avail := workingMonday()
	avail.IsActive = false
	f := newFixture(t, avail)

	slots, err := f.svc.ListSlots(f.professionalID, f.serviceID, "2026-03-02")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestListSlotsNoScheduleReturnsEmpty(t *testing.T) {
	f := newFixture(t, nil)

	slots, err := f.svc.ListSlots(f.professionalID, f.serviceID, "2026-03-02")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestListSlotsUnknownService(t *testing.T) {
	f := newFixture(t, workingMonday())

	_, err := f.svc.ListSlots(f.professionalID, uuid.New(), "2026-03-02")
	assert.True(t, apperr.IsNotFound(err))
}

func TestListSlotsBadDate(t *testing.T) {
	f := newFixture(t, workingMonday())

	_, err := f.svc.ListSlots(f.professionalID, f.serviceID, "02/03/2026")
	assert.True(t, apperr.IsValidation(err))
}

func TestListSlotsReflectsExistingBookings(t *testing.T) {
	f := newFixture(t, workingMonday())

	_, err := f.svc.CreateBooking(f.bookingRequest(mondayAt(10, 0)))
	require.NoError(t, err)

	slots, err := f.svc.ListSlots(f.professionalID, f.serviceID, "2026-03-02")
	require.NoError(t, err)

	byStart := map[time.Time]bool{}
	for _, s := range slots {
		byStart[s.Start] = s.Available
	}
	assert.False(t, byStart[mondayAt(9, 30)])
	assert.False(t, byStart[mondayAt(10, 0)])
	assert.False(t, byStart[mondayAt(10, 30)])
	assert.True(t, byStart[mondayAt(9, 0)])
	assert.True(t, byStart[mondayAt(11, 0)])
}

func TestCreateBookingRecomputesEndTime(t *testing.T) {
	f := newFixture(t, workingMonday())

	booking, err := f.svc.CreateBooking(f.bookingRequest(mondayAt(10, 0)))
	require.NoError(t, err)

	// the end always comes from the catalog duration, never from the client
	assert.Equal(t, mondayAt(11, 0), booking.EndTime.UTC())
	assert.Equal(t, db.StatusConfirmed, booking.Status)
	assert.Equal(t, "5511987654321", booking.ClientWhatsApp)
	assert.Equal(t, 1, f.notifier.confirmations)
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t, workingMonday())

	t.Run("empty name", func(t *testing.T) {
		req := f.bookingRequest(mondayAt(10, 0))
		req.ClientName = "   "
		_, err := f.svc.CreateBooking(req)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("invalid whatsapp", func(t *testing.T) {
		req := f.bookingRequest(mondayAt(10, 0))
		req.ClientWhatsApp = "12345"
		_, err := f.svc.CreateBooking(req)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("bad start_time", func(t *testing.T) {
		req := f.bookingRequest(mondayAt(10, 0))
		req.StartTime = "amanhã às 10"
		_, err := f.svc.CreateBooking(req)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("unknown service", func(t *testing.T) {
		req := f.bookingRequest(mondayAt(10, 0))
		req.ServiceID = uuid.New()
		_, err := f.svc.CreateBooking(req)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("professional from another tenant", func(t *testing.T) {
		req := f.bookingRequest(mondayAt(10, 0))
		req.TenantID = uuid.New()
		_, err := f.svc.CreateBooking(req)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestCreateBookingConflict(t *testing.T) {
	f := newFixture(t, workingMonday())

	_, err := f.svc.CreateBooking(f.bookingRequest(mondayAt(10, 0)))
	require.NoError(t, err)

	// a candidate straddling the committed one loses
	_, err = f.svc.CreateBooking(f.bookingRequest(mondayAt(10, 30)))
	assert.True(t, apperr.IsConflict(err))

	// no new booking, no extra notification
	assert.Len(t, f.store.bookings, 1)
	assert.Equal(t, 1, f.notifier.confirmations)
}

func TestCreateBookingConcurrentOnlyOneWins(t *testing.T) {
	f := newFixture(t, workingMonday())

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CreateBooking(f.bookingRequest(mondayAt(10, 0)))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case apperr.IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, conflicts)
	assert.Len(t, f.store.bookings, 1)
}

func TestUpdateBookingStatus(t *testing.T) {
	f := newFixture(t, workingMonday())

	booking, err := f.svc.CreateBooking(f.bookingRequest(mondayAt(10, 0)))
	require.NoError(t, err)

	t.Run("cancel notifies the client", func(t *testing.T) {
		updated, err := f.svc.UpdateBookingStatus(f.tenantID, booking.ID, db.StatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, db.StatusCancelled, updated.Status)
		assert.Equal(t, 1, f.notifier.cancellations)
	})

	t.Run("cancelled slot frees up", func(t *testing.T) {
		slots, err := f.svc.ListSlots(f.professionalID, f.serviceID, "2026-03-02")
		require.NoError(t, err)
		for _, s := range slots {
			assert.True(t, s.Available)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := f.svc.UpdateBookingStatus(f.tenantID, booking.ID, "DONE")
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := f.svc.UpdateBookingStatus(f.tenantID, uuid.New(), db.StatusCompleted)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("another tenant's booking looks like not found", func(t *testing.T) {
		_, err := f.svc.UpdateBookingStatus(uuid.New(), booking.ID, db.StatusCompleted)
		assert.True(t, apperr.IsNotFound(err))
	})
}
