package check_conflicts

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CaptainID == uuid.Nil {
		return fmt.Errorf("%w: captainId is required", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	if !req.Start.Before(req.End) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	if req.BufferMinutes != nil && (*req.BufferMinutes < domain.MinBufferMinutes || *req.BufferMinutes > domain.MaxBufferMinutes) {
		return fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	return nil
}
