package reschedule_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/usecase/check_conflicts"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Reschedule(ctx context.Context, id uuid.UUID, start, end time.Time) error
}

// CaptainRepository интерфейс репозитория капитанов
type CaptainRepository interface {
	GetPolicy(ctx context.Context, captainID uuid.UUID) (*domain.CaptainPolicy, error)
	GetTripType(ctx context.Context, tripTypeID uuid.UUID) (*domain.TripType, error)
	LockCaptain(ctx context.Context, captainID uuid.UUID) error
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetActiveWindows(ctx context.Context, captainID uuid.UUID, weekday time.Weekday) ([]*domain.AvailabilityWindow, error)
	GetBlackout(ctx context.Context, captainID uuid.UUID, date time.Time) (*domain.BlackoutDate, error)
}

// ConflictChecker проверка пересечений
type ConflictChecker interface {
	Execute(ctx context.Context, req *check_conflicts.Request) (*check_conflicts.Response, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// Metrics метрики конфликтов
type Metrics interface {
	ObserveConflict(stage string)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
