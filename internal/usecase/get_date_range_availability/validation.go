package get_date_range_availability

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (uuid.UUID, error) {
	captainID, err := uuid.Parse(req.CaptainID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: captainId must be a UUID", ErrInvalidInput)
	}

	if req.Days < 1 || req.Days > domain.MaxRangeDays {
		return uuid.Nil, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, domain.MaxRangeDays)
	}

	return captainID, nil
}
