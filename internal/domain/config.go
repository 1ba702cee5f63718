package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// CaptainPolicy is the subset of a captain's profile that drives availability.
// Nullable columns fall back to defaults in EffectiveBufferMinutes/EffectiveAdvanceDays.
type CaptainPolicy struct {
	CaptainID          uuid.UUID
	Timezone           string // IANA zone, e.g. "America/New_York"
	BufferMinutes      *int   // NULL = DefaultBufferMinutes
	AdvanceBookingDays *int   // NULL = DefaultAdvanceBookingDays
	Hibernating        bool
	UpdatedAt          time.Time
}

// EffectiveBufferMinutes returns the configured buffer or the default
func (p *CaptainPolicy) EffectiveBufferMinutes() int {
	if p.BufferMinutes == nil {
		return DefaultBufferMinutes
	}
	return *p.BufferMinutes
}

// EffectiveAdvanceDays returns the configured advance-booking horizon or the default
func (p *CaptainPolicy) EffectiveAdvanceDays() int {
	if p.AdvanceBookingDays == nil {
		return DefaultAdvanceBookingDays
	}
	return *p.AdvanceBookingDays
}

// Buffer returns the buffer as a duration
func (p *CaptainPolicy) Buffer() time.Duration {
	return time.Duration(p.EffectiveBufferMinutes()) * time.Minute
}

// AvailabilityWindow is a recurring weekly interval during which a captain is open
type AvailabilityWindow struct {
	ID        uuid.UUID
	CaptainID uuid.UUID
	DayOfWeek time.Weekday // 0 = Sunday ... 6 = Saturday
	StartTime types.TimeString
	EndTime   types.TimeString
	IsActive  bool
}

// StartMinutes returns the window start in minutes since midnight
func (w *AvailabilityWindow) StartMinutes() int {
	return w.StartTime.Minutes()
}

// EndMinutes returns the window end in minutes since midnight
func (w *AvailabilityWindow) EndMinutes() int {
	return w.EndTime.Minutes()
}

// BlackoutDate closes a single calendar date regardless of recurring windows
type BlackoutDate struct {
	ID        uuid.UUID
	CaptainID uuid.UUID
	Date      time.Time // calendar date, UTC midnight
	Reason    *string
	CreatedAt time.Time
}

// TripType is a bookable trip offered by a captain
type TripType struct {
	ID             uuid.UUID
	CaptainID      uuid.UUID
	VesselID       *uuid.UUID
	Name           string
	DurationHours  int
	DepartureTimes []string // raw local times, e.g. "6:00 AM"; empty = fixed-interval stepping
}

// Duration returns the trip duration
func (t *TripType) Duration() time.Duration {
	return time.Duration(t.DurationHours) * time.Hour
}

// HasDepartureTimes returns true if the trip uses an explicit departure list
func (t *TripType) HasDepartureTimes() bool {
	return len(t.DepartureTimes) > 0
}

// IsOwnedBy returns true if the trip type belongs to the captain
func (t *TripType) IsOwnedBy(captainID uuid.UUID) bool {
	return t.CaptainID == captainID
}
