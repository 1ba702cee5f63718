package domain

import (
	"sort"
	"time"
)

// Interval is an absolute time range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsValid returns true if the interval has positive length
func (i Interval) IsValid() bool {
	return i.End.After(i.Start)
}

// Overlaps reports whether a and b conflict once buffer is applied between them:
//
//	a.Start < b.End+buffer && a.End+buffer > b.Start
//
// The predicate is symmetric in a and b. Touching intervals with a zero buffer
// do not overlap. Slot generation, the conflict checker and the booking write
// path all call this function and nothing else.
func Overlaps(a, b Interval, buffer time.Duration) bool {
	return a.Start.Before(b.End.Add(buffer)) && a.End.Add(buffer).After(b.Start)
}

// ConflictingBookings returns the active bookings that overlap interval under buffer,
// ordered by start time
func ConflictingBookings(interval Interval, bookings []*Booking, buffer time.Duration) []*Booking {
	conflicts := make([]*Booking, 0)
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if Overlaps(interval, b.Interval(), buffer) {
			conflicts = append(conflicts, b)
		}
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		return conflicts[i].ScheduledStart.Before(conflicts[j].ScheduledStart)
	})
	return conflicts
}

// HasConflict is ConflictingBookings without collecting the result
func HasConflict(interval Interval, bookings []*Booking, buffer time.Duration) bool {
	for _, b := range bookings {
		if b.IsActive() && Overlaps(interval, b.Interval(), buffer) {
			return true
		}
	}
	return false
}
