package get_forecast

import (
	"context"

	"github.com/m04kA/SMC-CharterService/internal/integrations/weather"
)

type ForecastProvider interface {
	Get(ctx context.Context, q weather.Query) (*weather.CachedForecast, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
