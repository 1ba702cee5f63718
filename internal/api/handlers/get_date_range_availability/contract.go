package get_date_range_availability

import (
	"context"

	getDateRange "github.com/m04kA/SMC-CharterService/internal/usecase/get_date_range_availability"
)

type GetDateRangeAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getDateRange.Request) (*getDateRange.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
