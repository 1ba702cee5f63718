package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingEventType тип события бронирования
type BookingEventType string

const (
	EventBookingCreated       BookingEventType = "booking.created"
	EventBookingRescheduled   BookingEventType = "booking.rescheduled"
	EventBookingStatusChanged BookingEventType = "booking.status_changed"
	EventBookingCancelled     BookingEventType = "booking.cancelled"
)

// BookingEvent событие для сервиса уведомлений.
// Публикуется только после фиксации транзакции.
type BookingEvent struct {
	ID             uuid.UUID        `json:"id"`
	Type           BookingEventType `json:"type"`
	BookingID      uuid.UUID        `json:"bookingId"`
	CaptainID      uuid.UUID        `json:"captainId"`
	GuestID        uuid.UUID        `json:"guestId"`
	Status         BookingStatus    `json:"status"`
	PreviousStatus *BookingStatus   `json:"previousStatus,omitempty"`
	ScheduledStart time.Time        `json:"scheduledStart"`
	ScheduledEnd   time.Time        `json:"scheduledEnd"`
	OccurredAt     time.Time        `json:"occurredAt"`
}

// NewBookingEvent создает событие по текущему состоянию бронирования
func NewBookingEvent(eventType BookingEventType, b *Booking, occurredAt time.Time) BookingEvent {
	return BookingEvent{
		ID:             uuid.New(),
		Type:           eventType,
		BookingID:      b.ID,
		CaptainID:      b.CaptainID,
		GuestID:        b.GuestID,
		Status:         b.Status,
		ScheduledStart: b.ScheduledStart,
		ScheduledEnd:   b.ScheduledEnd,
		OccurredAt:     occurredAt,
	}
}
