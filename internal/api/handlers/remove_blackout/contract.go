package remove_blackout

import (
	"context"

	"github.com/google/uuid"
)

type AvailabilityService interface {
	RemoveBlackout(ctx context.Context, captainID uuid.UUID, userID uuid.UUID, rawDate string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
