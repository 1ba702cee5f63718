package reschedule_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/service/bookings/models"
	rescheduleBooking "github.com/m04kA/SMC-CharterService/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	Start time.Time `json:"start"` // RFC 3339
}

func (r *RescheduleBookingRequest) ToUseCaseRequest(actorID, bookingID uuid.UUID) *rescheduleBooking.Request {
	return &rescheduleBooking.Request{
		ActorID:   actorID,
		BookingID: bookingID,
		Start:     r.Start,
	}
}

// RescheduleBookingResponse перенесенное бронирование и прежний статус
type RescheduleBookingResponse struct {
	models.BookingResponse
	PreviousStatus string `json:"previousStatus"`
}

func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		BookingResponse: *models.FromDomainBooking(resp.Booking),
		PreviousStatus:  string(resp.PreviousStatus),
	}
}
