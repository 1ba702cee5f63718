package availability

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/service/availability/models"
	"github.com/m04kA/SMC-CharterService/pkg/ptr"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

type fakeCaptains struct {
	policies map[uuid.UUID]*domain.CaptainPolicy
	updates  int
}

func (f *fakeCaptains) GetPolicy(_ context.Context, id uuid.UUID) (*domain.CaptainPolicy, error) {
	p, ok := f.policies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeCaptains) UpdatePolicy(_ context.Context, p *domain.CaptainPolicy) (*domain.CaptainPolicy, error) {
	f.updates++
	cp := *p
	f.policies[p.CaptainID] = &cp
	return p, nil
}

type fakeAvailability struct {
	windows   []*domain.AvailabilityWindow
	blackouts map[string]*domain.BlackoutDate
	ranges    [][2]time.Time
}

func (f *fakeAvailability) ListWindows(context.Context, uuid.UUID) ([]*domain.AvailabilityWindow, error) {
	return f.windows, nil
}

func (f *fakeAvailability) ReplaceWindows(_ context.Context, _ uuid.UUID, windows []*domain.AvailabilityWindow) error {
	f.windows = windows
	return nil
}

func (f *fakeAvailability) GetBlackoutsInRange(_ context.Context, _ uuid.UUID, from, to time.Time) ([]*domain.BlackoutDate, error) {
	f.ranges = append(f.ranges, [2]time.Time{from, to})
	out := make([]*domain.BlackoutDate, 0)
	for _, b := range f.blackouts {
		if !b.Date.Before(from) && b.Date.Before(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeAvailability) AddBlackout(_ context.Context, b *domain.BlackoutDate) (*domain.BlackoutDate, error) {
	key := b.Date.Format(domain.DateFormat)
	if _, ok := f.blackouts[key]; ok {
		return nil, domain.ErrConflict
	}
	f.blackouts[key] = b
	return b, nil
}

func (f *fakeAvailability) DeleteBlackout(_ context.Context, _ uuid.UUID, date time.Time) error {
	key := date.Format(domain.DateFormat)
	if _, ok := f.blackouts[key]; !ok {
		return domain.ErrNotFound
	}
	delete(f.blackouts, key)
	return nil
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(t *testing.T) (*Service, uuid.UUID, *fakeCaptains, *fakeAvailability) {
	t.Helper()
	captainID := uuid.New()
	captains := &fakeCaptains{policies: map[uuid.UUID]*domain.CaptainPolicy{
		captainID: {CaptainID: captainID, Timezone: "America/New_York"},
	}}
	availability := &fakeAvailability{
		windows: []*domain.AvailabilityWindow{
			{ID: uuid.New(), CaptainID: captainID, DayOfWeek: time.Monday, StartTime: types.MustTimeString("06:00"), EndTime: types.MustTimeString("14:00"), IsActive: true},
		},
		blackouts: map[string]*domain.BlackoutDate{},
	}
	svc := NewService(captains, availability, inlineTx{}, nopLogger{})
	svc.now = func() time.Time { return time.Date(2026, 10, 15, 13, 0, 0, 0, time.UTC) }
	return svc, captainID, captains, availability
}

func TestGetSettings_EffectiveDefaults(t *testing.T) {
	svc, captainID, _, availability := newService(t)

	resp, err := svc.GetSettings(context.Background(), captainID, captainID)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultBufferMinutes, resp.BufferMinutes)
	assert.Equal(t, domain.DefaultAdvanceBookingDays, resp.AdvanceBookingDays)
	require.Len(t, resp.Windows, 1)
	assert.Equal(t, 1, resp.Windows[0].DayOfWeek)
	assert.Equal(t, "06:00", resp.Windows[0].StartTime)

	require.Len(t, availability.ranges, 1)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), availability.ranges[0][0])
	assert.Equal(t, time.Date(2026, 12, 14, 0, 0, 0, 0, time.UTC), availability.ranges[0][1])
}

func TestGetSettings_OtherUserDenied(t *testing.T) {
	svc, captainID, _, _ := newService(t)

	_, err := svc.GetSettings(context.Background(), captainID, uuid.New())
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateSettings_PartialWithWindows(t *testing.T) {
	svc, captainID, captains, availability := newService(t)

	resp, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		UserID:        captainID,
		CaptainID:     captainID,
		BufferMinutes: ptr.Ptr(30),
		Hibernating:   ptr.Ptr(true),
		Windows: &[]models.WindowRequest{
			{DayOfWeek: 6, StartTime: "6:00 AM", EndTime: "18:00"},
			{DayOfWeek: 0, StartTime: "08:00", EndTime: "12:00", IsActive: ptr.Ptr(false)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.BufferMinutes)
	assert.True(t, resp.Hibernating)
	assert.Equal(t, "America/New_York", resp.Timezone)
	assert.Equal(t, 1, captains.updates)

	require.Len(t, availability.windows, 2)
	assert.Equal(t, time.Saturday, availability.windows[0].DayOfWeek)
	assert.Equal(t, types.TimeString("06:00"), availability.windows[0].StartTime)
	assert.False(t, availability.windows[1].IsActive)
}

func TestUpdateSettings_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *models.UpdateSettingsRequest)
	}{
		{"unknown timezone", func(r *models.UpdateSettingsRequest) { r.Timezone = ptr.Ptr("Mars/Olympus") }},
		{"negative buffer", func(r *models.UpdateSettingsRequest) { r.BufferMinutes = ptr.Ptr(-1) }},
		{"buffer over a day", func(r *models.UpdateSettingsRequest) { r.BufferMinutes = ptr.Ptr(1441) }},
		{"zero advance days", func(r *models.UpdateSettingsRequest) { r.AdvanceBookingDays = ptr.Ptr(0) }},
		{"advance days over a year", func(r *models.UpdateSettingsRequest) { r.AdvanceBookingDays = ptr.Ptr(366) }},
		{"bad weekday", func(r *models.UpdateSettingsRequest) {
			r.Windows = &[]models.WindowRequest{{DayOfWeek: 7, StartTime: "06:00", EndTime: "10:00"}}
		}},
		{"start after end", func(r *models.UpdateSettingsRequest) {
			r.Windows = &[]models.WindowRequest{{DayOfWeek: 1, StartTime: "14:00", EndTime: "06:00"}}
		}},
		{"bad time", func(r *models.UpdateSettingsRequest) {
			r.Windows = &[]models.WindowRequest{{DayOfWeek: 1, StartTime: "25:00", EndTime: "26:00"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, captainID, captains, _ := newService(t)
			req := &models.UpdateSettingsRequest{UserID: captainID, CaptainID: captainID}
			tt.modify(req)

			_, err := svc.UpdateSettings(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Zero(t, captains.updates)
		})
	}
}

func TestBlackouts(t *testing.T) {
	svc, captainID, _, availability := newService(t)
	ctx := context.Background()

	resp, err := svc.AddBlackout(ctx, &models.AddBlackoutRequest{
		UserID: captainID, CaptainID: captainID, Date: "2026-10-19", Reason: ptr.Ptr("maintenance"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", resp.Date)
	assert.Contains(t, availability.blackouts, "2026-10-19")

	_, err = svc.AddBlackout(ctx, &models.AddBlackoutRequest{UserID: captainID, CaptainID: captainID, Date: "2026-10-19"})
	assert.ErrorIs(t, err, ErrBlackoutAlreadyExists)

	_, err = svc.AddBlackout(ctx, &models.AddBlackoutRequest{UserID: captainID, CaptainID: captainID, Date: "19.10.2026"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddBlackout(ctx, &models.AddBlackoutRequest{UserID: uuid.New(), CaptainID: captainID, Date: "2026-10-20"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	require.NoError(t, svc.RemoveBlackout(ctx, captainID, captainID, "2026-10-19"))
	assert.Empty(t, availability.blackouts)

	assert.ErrorIs(t, svc.RemoveBlackout(ctx, captainID, captainID, "2026-10-19"), ErrBlackoutNotFound)
}
