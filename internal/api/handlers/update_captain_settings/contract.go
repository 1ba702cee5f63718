package update_captain_settings

import (
	"context"

	"github.com/m04kA/SMC-CharterService/internal/service/availability/models"
)

type AvailabilityService interface {
	UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
