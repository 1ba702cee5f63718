package check_conflicts

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveOverlapping получает активные бронирования капитана или судна, пересекающие интервал
	GetActiveOverlapping(ctx context.Context, captainID uuid.UUID, vesselID *uuid.UUID, interval domain.Interval, excludeBookingID *uuid.UUID) ([]*domain.Booking, error)
}

// PolicyRepository интерфейс репозитория политики капитана
type PolicyRepository interface {
	GetPolicy(ctx context.Context, captainID uuid.UUID) (*domain.CaptainPolicy, error)
}

// Metrics счетчик обнаруженных конфликтов
type Metrics interface {
	ObserveConflict(stage string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
