package domain

import "time"

// Slot is a computed bookable interval. It is never persisted or cached.
type Slot struct {
	Start time.Time
	End   time.Time
}

// Interval returns the slot as an interval
func (s Slot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

// Duration returns the slot length
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// DateAvailabilitySummary explains why a date does or does not have slots
type DateAvailabilitySummary struct {
	Date                  time.Time // calendar date, UTC midnight
	DayOfWeek             time.Weekday
	HasAvailability       bool
	IsBlackout            bool
	IsPast                bool
	IsBeyondAdvanceWindow bool
	HasActiveWindow       bool
	BlackoutReason        *string
}

// IsClosed returns true if the date cannot have slots for a reason other than existing bookings
func (s *DateAvailabilitySummary) IsClosed() bool {
	return s.IsPast || s.IsBeyondAdvanceWindow || s.IsBlackout || !s.HasActiveWindow
}
