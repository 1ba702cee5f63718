package get_captain_settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetSettings(ctx context.Context, captainID uuid.UUID, userID uuid.UUID) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
