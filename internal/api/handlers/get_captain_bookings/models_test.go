package get_captain_bookings

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	captainID := uuid.New()

	req, err := ToServiceRequest(captainID, captainID, "2026-10-19T00:00:00-04:00", "2026-10-26T00:00:00-04:00", "confirmed", "true")
	require.NoError(t, err)
	require.NotNil(t, req.StartDate)
	assert.Equal(t, time.Date(2026, 10, 19, 4, 0, 0, 0, time.UTC), req.StartDate.UTC())
	assert.Equal(t, "confirmed", *req.Status)
	assert.True(t, req.IncludeInactive)

	req, err = ToServiceRequest(captainID, captainID, "", "", "", "")
	require.NoError(t, err)
	assert.Nil(t, req.StartDate)
	assert.Nil(t, req.Status)
	assert.False(t, req.IncludeInactive)

	_, err = ToServiceRequest(captainID, captainID, "2026-10-19", "", "", "")
	assert.Error(t, err)

	_, err = ToServiceRequest(captainID, captainID, "", "", "", "maybe")
	assert.Error(t, err)
}
