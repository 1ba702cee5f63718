package get_available_slots

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/pkg/timezone"
)

type parsedRequest struct {
	captainID  uuid.UUID
	tripTypeID uuid.UUID
	date       time.Time
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (*parsedRequest, error) {
	captainID, err := uuid.Parse(req.CaptainID)
	if err != nil {
		return nil, fmt.Errorf("%w: captainId must be a UUID", ErrInvalidInput)
	}

	tripTypeID, err := uuid.Parse(req.TripTypeID)
	if err != nil {
		return nil, fmt.Errorf("%w: tripTypeId must be a UUID", ErrInvalidInput)
	}

	if req.Date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := timezone.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	return &parsedRequest{captainID: captainID, tripTypeID: tripTypeID, date: date}, nil
}
