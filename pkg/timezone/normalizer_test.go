package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CharterService/pkg/types"
)

func TestToInstant(t *testing.T) {
	date := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)

	got, err := ToInstant(date, types.MustTimeString("06:00"), "America/New_York")
	require.NoError(t, err)

	// EDT = UTC-4
	assert.True(t, got.Equal(time.Date(2026, 7, 6, 10, 0, 0, 0, time.UTC)), got.String())
}

func TestToInstant_DifferentOffsetsAcrossDST(t *testing.T) {
	winter := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	summer := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)
	clock := types.MustTimeString("08:00")

	w, err := ToInstant(winter, clock, "America/New_York")
	require.NoError(t, err)
	s, err := ToInstant(summer, clock, "America/New_York")
	require.NoError(t, err)

	assert.Equal(t, 13, w.UTC().Hour())
	assert.Equal(t, 12, s.UTC().Hour())
}

func TestToInstant_SpringForwardGap(t *testing.T) {
	// 2026-03-08 02:30 does not exist in New York
	date := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	got, err := ToInstant(date, types.MustTimeString("02:30"), "America/New_York")
	require.NoError(t, err)

	loc, _ := time.LoadLocation("America/New_York")
	assert.Equal(t, 3, got.In(loc).Hour())
}

func TestToInstant_Errors(t *testing.T) {
	date := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)

	_, err := ToInstant(date, types.MustTimeString("06:00"), "Mars/Olympus_Mons")
	assert.ErrorIs(t, err, ErrTimestampConstruction)

	_, err = ToInstant(date, types.MustTimeString("06:00"), "")
	assert.ErrorIs(t, err, ErrTimestampConstruction)

	_, err = ToInstant(date, types.TimeString("6 o'clock"), "UTC")
	assert.ErrorIs(t, err, ErrTimestampConstruction)
}

func TestTodayAndDayBounds(t *testing.T) {
	loc, err := LoadLocation("Pacific/Honolulu")
	require.NoError(t, err)

	// 2026-07-07 05:00 UTC is still 2026-07-06 in Honolulu (UTC-10)
	now := time.Date(2026, 7, 7, 5, 0, 0, 0, time.UTC)
	today := Today(now, loc)
	assert.Equal(t, time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC), today)

	start, end := DayBounds(today, loc)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
	assert.True(t, start.Equal(time.Date(2026, 7, 6, 10, 0, 0, 0, time.UTC)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())

	_, err = ParseDate("19/10/2026")
	assert.Error(t, err)
}
