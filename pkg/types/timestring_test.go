package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "24h", input: "06:00", want: "06:00"},
		{name: "24h single digit hour", input: "6:30", want: "06:30"},
		{name: "with seconds", input: "14:00:00", want: "14:00"},
		{name: "12h morning", input: "6:00 AM", want: "06:00"},
		{name: "12h noon", input: "12:00 PM", want: "12:00"},
		{name: "12h midnight", input: "12:00 AM", want: "00:00"},
		{name: "12h lowercase", input: "10:15 pm", want: "22:15"},
		{name: "12h no minutes", input: "7 AM", want: "07:00"},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "sunrise", wantErr: true},
		{name: "out of range", input: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Arithmetic(t *testing.T) {
	start := MustTimeString("10:00")

	assert.Equal(t, 600, start.Minutes())
	assert.Equal(t, 10, start.Hour())
	assert.Equal(t, 0, start.Minute())

	later, err := start.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), later)
	assert.True(t, start.IsBefore(later))
	assert.True(t, later.IsAfter(start))
	assert.False(t, start.IsBefore(start))

	_, err = MustTimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("08:30:00")))
	assert.Equal(t, TimeString("08:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))

	value, err := MustTimeString("09:45").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:45", value)
}
