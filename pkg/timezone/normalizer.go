// Package timezone is the boundary between captain-local calendar/clock
// values and absolute instants. Nothing else in the service composes
// wall-clock times with a location.
package timezone

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// ErrTimestampConstruction is returned when a (date, clock, zone) triple
// cannot be turned into an instant.
var ErrTimestampConstruction = errors.New("timezone: cannot construct timestamp")

// LoadLocation resolves an IANA zone name. The empty string is rejected
// instead of silently meaning UTC.
func LoadLocation(tz string) (*time.Location, error) {
	if tz == "" {
		return nil, fmt.Errorf("%w: empty timezone", ErrTimestampConstruction)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTimestampConstruction, err)
	}
	return loc, nil
}

// ToInstant converts a calendar date and a local clock time in tz into an
// absolute instant. Wall times inside a DST gap are normalized forward.
func ToInstant(date time.Time, clock types.TimeString, tz string) (time.Time, error) {
	loc, err := LoadLocation(tz)
	if err != nil {
		return time.Time{}, err
	}
	return ToInstantIn(date, clock, loc)
}

// ToInstantIn is ToInstant for an already resolved location.
func ToInstantIn(date time.Time, clock types.TimeString, loc *time.Location) (time.Time, error) {
	if loc == nil {
		return time.Time{}, fmt.Errorf("%w: nil location", ErrTimestampConstruction)
	}
	if err := clock.Validate(); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrTimestampConstruction, err)
	}

	y, m, d := date.Date()
	instant := time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc)

	// time.Date may resolve a nonexistent wall time to the earlier offset;
	// move it past the transition instead.
	if local := instant.In(loc); local.Hour() != clock.Hour() || local.Minute() != clock.Minute() {
		_, before := instant.Zone()
		_, next := instant.ZoneBounds()
		if !next.IsZero() {
			_, after := next.Zone()
			instant = instant.Add(time.Duration(after-before) * time.Second)
		}
	}

	return instant, nil
}

// DateOf returns the calendar date of the instant as seen in loc, carried as
// a UTC midnight value.
func DateOf(instant time.Time, loc *time.Location) time.Time {
	y, m, d := instant.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the captain-local calendar date.
func Today(now time.Time, loc *time.Location) time.Time {
	return DateOf(now, loc)
}

// DayBounds returns the absolute [start, end) of a local calendar day. The
// length is not always 24h around DST transitions.
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	return start, end
}

// ParseDate parses a YYYY-MM-DD calendar date into a UTC midnight value.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}
