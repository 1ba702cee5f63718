package domain

// Default policy values
const (
	DefaultBufferMinutes      = 60
	DefaultAdvanceBookingDays = 60
)

// Slot generation constants
const (
	// SlotStepMinutes is the cursor step used when a trip type has no departure list
	SlotStepMinutes = 30
)

// Business validation constants
const (
	MinBufferMinutes      = 0
	MaxBufferMinutes      = 1440 // 1 day
	MinAdvanceBookingDays = 1
	MaxAdvanceBookingDays = 365
	MinTripDurationHours  = 1
	MaxTripDurationHours  = 24
	MaxNotesLength        = 500
	MaxReasonLength       = 500
	MaxRangeDays          = 365
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses are the statuses that still occupy a time slot
var ActiveStatuses = []BookingStatus{
	StatusPendingDeposit,
	StatusConfirmed,
	StatusWeatherHold,
	StatusRescheduled,
}

// InactiveStatuses are the statuses that no longer block new slots
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
	StatusExpired,
}

// StatusStrings converts statuses to plain strings for query building
func StatusStrings(statuses []BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
