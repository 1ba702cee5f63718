package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

type recordingConn struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (c *recordingConn) Publish(subject string, data []byte) error {
	if c.err != nil {
		return c.err
	}
	c.subjects = append(c.subjects, subject)
	c.payloads = append(c.payloads, data)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestPublisher_Publish(t *testing.T) {
	conn := &recordingConn{}
	pub := NewPublisher(conn, "charter.bookings", nopLogger{})

	booking := &domain.Booking{
		ID:             uuid.New(),
		CaptainID:      uuid.New(),
		GuestID:        uuid.New(),
		Status:         domain.StatusPendingDeposit,
		ScheduledStart: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
		ScheduledEnd:   time.Date(2026, 10, 19, 16, 0, 0, 0, time.UTC),
	}
	event := domain.NewBookingEvent(domain.EventBookingCreated, booking, time.Date(2026, 10, 15, 13, 0, 0, 0, time.UTC))

	require.NoError(t, pub.Publish(context.Background(), event))
	require.Len(t, conn.subjects, 1)
	assert.Equal(t, "charter.bookings.booking.created", conn.subjects[0])

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(conn.payloads[0], &decoded))
	assert.Equal(t, "booking.created", decoded["type"])
	assert.Equal(t, booking.ID.String(), decoded["bookingId"])
	assert.Equal(t, "pending_deposit", decoded["status"])
	assert.NotContains(t, decoded, "previousStatus")
}

func TestPublisher_Errors(t *testing.T) {
	pub := NewPublisher(&recordingConn{err: errors.New("connection closed")}, "", nopLogger{})

	err := pub.Publish(context.Background(), domain.BookingEvent{Type: domain.EventBookingCancelled})
	assert.ErrorIs(t, err, ErrPublish)
	assert.Equal(t, "booking.cancelled", pub.Subject(domain.EventBookingCancelled))

	assert.NoError(t, NopPublisher{}.Publish(context.Background(), domain.BookingEvent{}))
}
