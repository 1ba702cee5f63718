package reschedule_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/usecase/check_conflicts"
	"github.com/m04kA/SMC-CharterService/pkg/ptr"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

type memBookings struct {
	bookings   map[uuid.UUID]*domain.Booking
	overlapErr error
}

func (m *memBookings) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memBookings) Reschedule(_ context.Context, id uuid.UUID, start, end time.Time) error {
	b := m.bookings[id]
	b.ScheduledStart, b.ScheduledEnd, b.Status = start, end, domain.StatusRescheduled
	return nil
}

func (m *memBookings) GetActiveOverlapping(_ context.Context, captainID uuid.UUID, _ *uuid.UUID, interval domain.Interval, exclude *uuid.UUID) ([]*domain.Booking, error) {
	if m.overlapErr != nil {
		return nil, m.overlapErr
	}
	out := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if exclude != nil && b.ID == *exclude {
			continue
		}
		if b.CaptainID == captainID && b.IsActive() && b.ScheduledEnd.After(interval.Start) && b.ScheduledStart.Before(interval.End) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeCaptains struct {
	policy   *domain.CaptainPolicy
	tripType *domain.TripType
}

func (f *fakeCaptains) GetPolicy(context.Context, uuid.UUID) (*domain.CaptainPolicy, error) {
	return f.policy, nil
}

func (f *fakeCaptains) GetTripType(context.Context, uuid.UUID) (*domain.TripType, error) {
	return f.tripType, nil
}

func (f *fakeCaptains) LockCaptain(context.Context, uuid.UUID) error { return nil }

type fakeAvailability struct {
	windows []*domain.AvailabilityWindow
}

func (f *fakeAvailability) GetActiveWindows(_ context.Context, _ uuid.UUID, weekday time.Weekday) ([]*domain.AvailabilityWindow, error) {
	out := make([]*domain.AvailabilityWindow, 0)
	for _, w := range f.windows {
		if w.DayOfWeek == weekday {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeAvailability) GetBlackout(context.Context, uuid.UUID, time.Time) (*domain.BlackoutDate, error) {
	return nil, domain.ErrNotFound
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct{ events []domain.BookingEvent }

func (f *fakePublisher) Publish(_ context.Context, e domain.BookingEvent) error {
	f.events = append(f.events, e)
	return nil
}

type nopMetrics struct{}

func (nopMetrics) ObserveConflict(string) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	captainID uuid.UUID
	held      *domain.Booking
	other     *domain.Booking
	loc       *time.Location
	bookings  *memBookings
	publisher *fakePublisher
	uc        *UseCase
}

// newFixture окна по понедельникам и вторникам 06:00-14:00, поездка 4 часа, буфер 60 минут.
// В понедельник бронирование на weather_hold 06:00-10:00 и подтвержденное на вторник 06:00-10:00.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	captainID, tripTypeID := uuid.New(), uuid.New()
	held := &domain.Booking{
		ID: uuid.New(), CaptainID: captainID, TripTypeID: tripTypeID, GuestID: uuid.New(),
		ScheduledStart: time.Date(2026, 10, 19, 6, 0, 0, 0, loc),
		ScheduledEnd:   time.Date(2026, 10, 19, 10, 0, 0, 0, loc),
		Status:         domain.StatusWeatherHold,
	}
	other := &domain.Booking{
		ID: uuid.New(), CaptainID: captainID, TripTypeID: tripTypeID, GuestID: uuid.New(),
		ScheduledStart: time.Date(2026, 10, 20, 6, 0, 0, 0, loc),
		ScheduledEnd:   time.Date(2026, 10, 20, 10, 0, 0, 0, loc),
		Status:         domain.StatusConfirmed,
	}

	f := &fixture{
		captainID: captainID,
		held:      held,
		other:     other,
		loc:       loc,
		bookings:  &memBookings{bookings: map[uuid.UUID]*domain.Booking{held.ID: held, other.ID: other}},
		publisher: &fakePublisher{},
	}
	captains := &fakeCaptains{
		policy:   &domain.CaptainPolicy{CaptainID: captainID, Timezone: "America/New_York", BufferMinutes: ptr.Ptr(60)},
		tripType: &domain.TripType{ID: tripTypeID, CaptainID: captainID, DurationHours: 4, DepartureTimes: []string{}},
	}
	availability := &fakeAvailability{windows: []*domain.AvailabilityWindow{
		{CaptainID: captainID, DayOfWeek: time.Monday, StartTime: types.MustTimeString("06:00"), EndTime: types.MustTimeString("14:00"), IsActive: true},
		{CaptainID: captainID, DayOfWeek: time.Tuesday, StartTime: types.MustTimeString("06:00"), EndTime: types.MustTimeString("14:00"), IsActive: true},
	}}
	checker := check_conflicts.NewUseCase(f.bookings, captains, nopMetrics{}, nopLogger{})
	f.uc = NewUseCase(f.bookings, captains, availability, checker, inlineTx{}, f.publisher, nopMetrics{}, nopLogger{}).
		WithTimeProvider(fixedTime{now: time.Date(2026, 10, 15, 9, 0, 0, 0, loc)})
	return f
}

func TestReschedule_OverlappingOwnTimeIsAllowed(t *testing.T) {
	f := newFixture(t)

	// Новое время пересекается только с самим переносимым бронированием
	start := time.Date(2026, 10, 19, 8, 0, 0, 0, f.loc)
	resp, err := f.uc.Execute(context.Background(), &Request{ActorID: f.captainID, BookingID: f.held.ID, Start: start})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRescheduled, resp.Booking.Status)
	assert.Equal(t, domain.StatusWeatherHold, resp.PreviousStatus)
	assert.True(t, resp.Booking.ScheduledEnd.Equal(time.Date(2026, 10, 19, 12, 0, 0, 0, f.loc)))
	assert.Equal(t, domain.StatusRescheduled, f.bookings.bookings[f.held.ID].Status)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.EventBookingRescheduled, f.publisher.events[0].Type)
	require.NotNil(t, f.publisher.events[0].PreviousStatus)
	assert.Equal(t, domain.StatusWeatherHold, *f.publisher.events[0].PreviousStatus)
}

func TestReschedule_ConflictWithAnotherBooking(t *testing.T) {
	f := newFixture(t)

	start := time.Date(2026, 10, 20, 10, 0, 0, 0, f.loc)
	_, err := f.uc.Execute(context.Background(), &Request{ActorID: f.captainID, BookingID: f.held.ID, Start: start})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, domain.StatusWeatherHold, f.bookings.bookings[f.held.ID].Status)
	assert.Empty(t, f.publisher.events)
}

func TestReschedule_SerializationFailureOnConflictRead(t *testing.T) {
	f := newFixture(t)
	f.bookings.overlapErr = fmt.Errorf("list bookings: %w", &pq.Error{Code: "40001"})

	start := time.Date(2026, 10, 19, 8, 0, 0, 0, f.loc)
	_, err := f.uc.Execute(context.Background(), &Request{ActorID: f.captainID, BookingID: f.held.ID, Start: start})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, domain.StatusWeatherHold, f.bookings.bookings[f.held.ID].Status)
	assert.Empty(t, f.publisher.events)
}

func TestReschedule_Errors(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *fixture) *Request
		wantErr error
	}{
		{
			name: "guest cannot reschedule",
			prepare: func(f *fixture) *Request {
				return &Request{ActorID: f.held.GuestID, BookingID: f.held.ID, Start: time.Date(2026, 10, 19, 8, 0, 0, 0, f.loc)}
			},
			wantErr: ErrAccessDenied,
		},
		{
			name: "unknown booking",
			prepare: func(f *fixture) *Request {
				return &Request{ActorID: f.captainID, BookingID: uuid.New(), Start: time.Date(2026, 10, 19, 8, 0, 0, 0, f.loc)}
			},
			wantErr: ErrBookingNotFound,
		},
		{
			name: "pending deposit cannot be moved",
			prepare: func(f *fixture) *Request {
				f.bookings.bookings[f.held.ID].Status = domain.StatusPendingDeposit
				return &Request{ActorID: f.captainID, BookingID: f.held.ID, Start: time.Date(2026, 10, 19, 8, 0, 0, 0, f.loc)}
			},
			wantErr: ErrCannotReschedule,
		},
		{
			name: "start outside windows",
			prepare: func(f *fixture) *Request {
				return &Request{ActorID: f.captainID, BookingID: f.held.ID, Start: time.Date(2026, 10, 21, 8, 0, 0, 0, f.loc)}
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "missing start",
			prepare: func(f *fixture) *Request {
				return &Request{ActorID: f.captainID, BookingID: f.held.ID}
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.uc.Execute(context.Background(), tt.prepare(f))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.publisher.events)
		})
	}
}
