package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-CharterService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CaptainID  uuid.UUID `json:"captainId"`
	TripTypeID uuid.UUID `json:"tripTypeId"`
	Start      time.Time `json:"start"` // RFC 3339, начало выбранного слота
	PartySize  int       `json:"partySize"`
	Notes      *string   `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в use case request.
// Гость берется из заголовка, а не из тела.
func (r *CreateBookingRequest) ToUseCaseRequest(guestID uuid.UUID) *createBooking.Request {
	return &createBooking.Request{
		GuestID:    guestID,
		CaptainID:  r.CaptainID,
		TripTypeID: r.TripTypeID,
		Start:      r.Start,
		PartySize:  r.PartySize,
		Notes:      r.Notes,
	}
}

// FromUseCaseResponse конвертирует use case response в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
	return models.FromDomainBooking(resp.Booking)
}
