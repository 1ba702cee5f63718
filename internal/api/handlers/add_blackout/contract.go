package add_blackout

import (
	"context"

	"github.com/m04kA/SMC-CharterService/internal/service/availability/models"
)

type AvailabilityService interface {
	AddBlackout(ctx context.Context, req *models.AddBlackoutRequest) (*models.BlackoutResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
