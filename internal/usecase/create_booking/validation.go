package create_booking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.GuestID == uuid.Nil {
		return fmt.Errorf("%w: guestId is required", ErrInvalidInput)
	}

	if req.CaptainID == uuid.Nil {
		return fmt.Errorf("%w: captainId is required", ErrInvalidInput)
	}

	if req.TripTypeID == uuid.Nil {
		return fmt.Errorf("%w: tripTypeId is required", ErrInvalidInput)
	}

	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	if req.PartySize < 1 {
		return fmt.Errorf("%w: partySize must be positive", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
