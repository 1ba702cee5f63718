package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPendingDeposit BookingStatus = "pending_deposit"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusWeatherHold    BookingStatus = "weather_hold"
	StatusRescheduled    BookingStatus = "rescheduled"
	StatusCancelled      BookingStatus = "cancelled"
	StatusCompleted      BookingStatus = "completed"
	StatusNoShow         BookingStatus = "no_show"
	StatusExpired        BookingStatus = "expired"
)

// allStatuses is the closed set of booking statuses
var allStatuses = []BookingStatus{
	StatusPendingDeposit,
	StatusConfirmed,
	StatusWeatherHold,
	StatusRescheduled,
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
	StatusExpired,
}

// ParseBookingStatus converts a raw string into a known status
func ParseBookingStatus(s string) (BookingStatus, error) {
	for _, st := range allStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown booking status %q", ErrValidation, s)
}

// IsActive reports whether a booking in this status still occupies its time slot.
// This is the only place that decides which statuses block new bookings.
func (s BookingStatus) IsActive() bool {
	switch s {
	case StatusPendingDeposit, StatusConfirmed, StatusWeatherHold, StatusRescheduled:
		return true
	default:
		return false
	}
}

// statusTransitions lists the statuses a captain may move a booking to
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPendingDeposit: {StatusConfirmed, StatusExpired, StatusCancelled},
	StatusConfirmed:      {StatusWeatherHold, StatusCompleted, StatusNoShow, StatusCancelled},
	StatusWeatherHold:    {StatusConfirmed, StatusCancelled},
	StatusRescheduled:    {StatusConfirmed, StatusWeatherHold, StatusCompleted, StatusNoShow, StatusCancelled},
}

// CanTransitionTo returns true if the status can be changed to next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking represents a guest's reservation of a captain's trip
type Booking struct {
	ID             uuid.UUID
	CaptainID      uuid.UUID
	VesselID       *uuid.UUID
	TripTypeID     uuid.UUID
	GuestID        uuid.UUID
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	Status         BookingStatus
	PartySize      int
	Notes          *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking blocks its time slot
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// Interval returns the booking's absolute time range
func (b *Booking) Interval() Interval {
	return Interval{Start: b.ScheduledStart, End: b.ScheduledEnd}
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.IsActive()
}

// CanBeRescheduled returns true if the booking can be moved to another time
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusConfirmed || b.Status == StatusWeatherHold || b.Status == StatusRescheduled
}

// BookingsFilter is used to select bookings of a captain and/or vessel
type BookingsFilter struct {
	CaptainID        *uuid.UUID     // Bookings of this captain
	VesselID         *uuid.UUID     // Bookings on this vessel (OR-ed with CaptainID when both are set)
	GuestID          *uuid.UUID     // Bookings of this guest
	From             *time.Time     // Bookings ending after this instant
	To               *time.Time     // Bookings starting before this instant
	Status           *BookingStatus // Exact status (optional)
	IncludeInactive  bool           // Include cancelled, completed, no-show and expired bookings
	ExcludeBookingID *uuid.UUID     // Skip this booking (used when rescheduling)
}
