package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveOverlapping получает активные бронирования капитана (и судна), пересекающие интервал
	GetActiveOverlapping(ctx context.Context, captainID uuid.UUID, vesselID *uuid.UUID, interval domain.Interval, excludeBookingID *uuid.UUID) ([]*domain.Booking, error)
}

// CaptainRepository интерфейс репозитория капитанов
type CaptainRepository interface {
	GetPolicy(ctx context.Context, captainID uuid.UUID) (*domain.CaptainPolicy, error)
	GetTripType(ctx context.Context, tripTypeID uuid.UUID) (*domain.TripType, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetActiveWindows(ctx context.Context, captainID uuid.UUID, weekday time.Weekday) ([]*domain.AvailabilityWindow, error)
	GetBlackout(ctx context.Context, captainID uuid.UUID, date time.Time) (*domain.BlackoutDate, error)
}

// Metrics метрики расчета слотов
type Metrics interface {
	ObserveSlots(outcome, mode string, slots int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
