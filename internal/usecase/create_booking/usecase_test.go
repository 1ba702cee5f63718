package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CharterService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CharterService/internal/usecase/check_conflicts"
	"github.com/m04kA/SMC-CharterService/pkg/ptr"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// memBookings хранилище бронирований в памяти, общее для проверки и записи
type memBookings struct {
	mu        sync.Mutex
	bookings   []*domain.Booking
	createErr  error
	overlapErr error
}

func (m *memBookings) GetActiveOverlapping(_ context.Context, captainID uuid.UUID, _ *uuid.UUID, interval domain.Interval, exclude *uuid.UUID) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
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

func (m *memBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.bookings = append(m.bookings, b)
	return b, nil
}

func (m *memBookings) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

type fakeCaptains struct {
	policy    *domain.CaptainPolicy
	tripTypes map[uuid.UUID]*domain.TripType
	locks     int
}

func (f *fakeCaptains) GetPolicy(_ context.Context, captainID uuid.UUID) (*domain.CaptainPolicy, error) {
	if f.policy == nil || f.policy.CaptainID != captainID {
		return nil, domain.ErrNotFound
	}
	return f.policy, nil
}

func (f *fakeCaptains) GetTripType(_ context.Context, id uuid.UUID) (*domain.TripType, error) {
	if tt, ok := f.tripTypes[id]; ok {
		return tt, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCaptains) LockCaptain(context.Context, uuid.UUID) error {
	f.locks++
	return nil
}

type fakeAvailability struct {
	windows   []*domain.AvailabilityWindow
	blackouts map[string]*domain.BlackoutDate
}

func (f *fakeAvailability) GetActiveWindows(_ context.Context, _ uuid.UUID, weekday time.Weekday) ([]*domain.AvailabilityWindow, error) {
	out := make([]*domain.AvailabilityWindow, 0)
	for _, w := range f.windows {
		if w.DayOfWeek == weekday && w.IsActive {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeAvailability) GetBlackout(_ context.Context, _ uuid.UUID, date time.Time) (*domain.BlackoutDate, error) {
	if b, ok := f.blackouts[date.Format(domain.DateFormat)]; ok {
		return b, nil
	}
	return nil, domain.ErrNotFound
}

// serialTx выполняет транзакции строго по одной, как advisory lock капитана
type serialTx struct {
	mu        sync.Mutex
	commitErr error
}

func (s *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(ctx); err != nil {
		return err
	}
	return s.commitErr
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.BookingEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, e domain.BookingEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return f.err
}

type fakeMetrics struct {
	mu        sync.Mutex
	created   int
	conflicts map[string]int
}

func (f *fakeMetrics) ObserveBookingCreated(string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
}

func (f *fakeMetrics) ObserveConflict(stage string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conflicts[stage]++
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const tz = "America/New_York"

type fixture struct {
	captainID  uuid.UUID
	tripTypeID uuid.UUID
	loc        *time.Location
	captains   *fakeCaptains
	bookings   *memBookings
	tx         *serialTx
	publisher  *fakePublisher
	metrics    *fakeMetrics
	uc         *UseCase
}

// newFixture капитан с окном по понедельникам 06:00-14:00, поездка 4 часа, буфер 60 минут.
// Сейчас: четверг 2026-10-15 09:00 по Нью-Йорку.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation(tz)
	require.NoError(t, err)

	f := &fixture{
		captainID:  uuid.New(),
		tripTypeID: uuid.New(),
		loc:        loc,
		bookings:   &memBookings{},
		tx:         &serialTx{},
		publisher:  &fakePublisher{},
		metrics:    &fakeMetrics{conflicts: map[string]int{}},
	}
	f.captains = &fakeCaptains{
		policy: &domain.CaptainPolicy{CaptainID: f.captainID, Timezone: tz, BufferMinutes: ptr.Ptr(60)},
		tripTypes: map[uuid.UUID]*domain.TripType{
			f.tripTypeID: {ID: f.tripTypeID, CaptainID: f.captainID, Name: "Half day", DurationHours: 4, DepartureTimes: []string{}},
		},
	}
	availability := &fakeAvailability{
		windows: []*domain.AvailabilityWindow{
			{CaptainID: f.captainID, DayOfWeek: time.Monday, StartTime: types.MustTimeString("06:00"), EndTime: types.MustTimeString("14:00"), IsActive: true},
		},
		blackouts: map[string]*domain.BlackoutDate{},
	}
	checker := check_conflicts.NewUseCase(f.bookings, f.captains, f.metrics, nopLogger{})
	f.uc = NewUseCase(f.bookings, f.captains, availability, checker, f.tx, f.publisher, f.metrics, nopLogger{}).
		WithTimeProvider(fixedTime{now: time.Date(2026, 10, 15, 9, 0, 0, 0, loc)})
	return f
}

func (f *fixture) request(start time.Time) *Request {
	return &Request{
		GuestID:    uuid.New(),
		CaptainID:  f.captainID,
		TripTypeID: f.tripTypeID,
		Start:      start,
		PartySize:  4,
	}
}

func (f *fixture) monday(hour, minute int) time.Time {
	return time.Date(2026, 10, 19, hour, minute, 0, 0, f.loc)
}

func TestCreateBooking_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request(f.monday(8, 0)))
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, domain.StatusPendingDeposit, b.Status)
	assert.True(t, b.ScheduledStart.Equal(f.monday(8, 0)))
	assert.True(t, b.ScheduledEnd.Equal(f.monday(12, 0)))
	assert.Equal(t, 1, f.captains.locks)
	assert.Equal(t, 1, f.metrics.created)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.EventBookingCreated, f.publisher.events[0].Type)
	assert.Equal(t, b.ID, f.publisher.events[0].BookingID)
}

func TestCreateBooking_ConflictWithBuffer(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), f.request(f.monday(6, 0)))
	require.NoError(t, err)

	// 10:00 попадает в буфер после поездки 06:00-10:00
	_, err = f.uc.Execute(context.Background(), f.request(f.monday(10, 0)))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, f.bookings.count())
	assert.Equal(t, 1, f.metrics.conflicts[check_conflicts.StageWrite])
	assert.Len(t, f.publisher.events, 1)
}

func TestCreateBooking_ConcurrentRequestsOnlyOneWins(t *testing.T) {
	f := newFixture(t)

	const workers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), f.request(f.monday(8, 0)))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotNotAvailable):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
	assert.Equal(t, 1, f.bookings.count())
}

func TestCreateBooking_DatabaseRejectsOverlap(t *testing.T) {
	tests := []struct {
		name string
		set  func(f *fixture)
	}{
		{
			name: "exclusion constraint on insert",
			set: func(f *fixture) {
				f.bookings.createErr = fmt.Errorf("%w: insert: %v", bookingRepo.ErrSlotNotAvailable, &pq.Error{Code: "23P01"})
			},
		},
		{
			name: "serialization failure on conflict check read",
			set: func(f *fixture) {
				f.bookings.overlapErr = fmt.Errorf("%w: List - execute query: %w", bookingRepo.ErrExecQuery, &pq.Error{Code: "40001"})
			},
		},
		{
			name: "serialization failure on commit",
			set: func(f *fixture) {
				f.tx.commitErr = fmt.Errorf("commit: %w", &pq.Error{Code: "40001"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.set(f)

			_, err := f.uc.Execute(context.Background(), f.request(f.monday(8, 0)))
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			assert.Equal(t, 1, f.metrics.conflicts[check_conflicts.StageWrite])
			assert.Empty(t, f.publisher.events)
			assert.Zero(t, f.metrics.created)
		})
	}
}

func TestCreateBooking_RejectsStartOutsideGrid(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		start time.Time
	}{
		{"not on 30 minute grid", f.monday(8, 15)},
		{"ends after window", f.monday(10, 30)},
		{"weekday without window", time.Date(2026, 10, 20, 8, 0, 0, 0, f.loc)},
		{"in the past", time.Date(2026, 10, 12, 8, 0, 0, 0, f.loc)},
		{"beyond advance window", time.Date(2027, 3, 1, 8, 0, 0, 0, f.loc)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), f.request(tt.start))
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Zero(t, f.bookings.count())
}

func TestCreateBooking_Hibernating(t *testing.T) {
	f := newFixture(t)
	f.captains.policy.Hibernating = true

	_, err := f.uc.Execute(context.Background(), f.request(f.monday(8, 0)))
	kind, ok := domain.UnavailableKindOf(err)
	require.True(t, ok)
	assert.Equal(t, domain.UnavailableHibernating, kind)
}

func TestCreateBooking_TripTypeOfAnotherCaptain(t *testing.T) {
	f := newFixture(t)
	f.captains.tripTypes[f.tripTypeID].CaptainID = uuid.New()

	_, err := f.uc.Execute(context.Background(), f.request(f.monday(8, 0)))
	assert.ErrorIs(t, err, ErrTripTypeNotFound)
}

func TestCreateBooking_PublishFailureKeepsBooking(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("nats down")

	resp, err := f.uc.Execute(context.Background(), f.request(f.monday(8, 0)))
	require.NoError(t, err)
	assert.NotNil(t, resp.Booking)
	assert.Equal(t, 1, f.bookings.count())
}

func TestCreateBooking_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		modify func(r *Request)
	}{
		{"no guest", func(r *Request) { r.GuestID = uuid.Nil }},
		{"no captain", func(r *Request) { r.CaptainID = uuid.Nil }},
		{"no trip type", func(r *Request) { r.TripTypeID = uuid.Nil }},
		{"no start", func(r *Request) { r.Start = time.Time{} }},
		{"empty party", func(r *Request) { r.PartySize = 0 }},
		{"long notes", func(r *Request) { r.Notes = ptr.Ptr(string(make([]byte, domain.MaxNotesLength+1))) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request(f.monday(8, 0))
			tt.modify(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Zero(t, f.captains.locks)
}
