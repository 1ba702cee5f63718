package get_date_range_availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// CaptainRepository интерфейс репозитория капитанов
type CaptainRepository interface {
	GetPolicy(ctx context.Context, captainID uuid.UUID) (*domain.CaptainPolicy, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetActiveWeekdays(ctx context.Context, captainID uuid.UUID) (map[time.Weekday]bool, error)
	GetBlackoutsInRange(ctx context.Context, captainID uuid.UUID, from, to time.Time) ([]*domain.BlackoutDate, error)
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
