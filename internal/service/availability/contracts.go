package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// CaptainRepository интерфейс репозитория капитанов
type CaptainRepository interface {
	GetPolicy(ctx context.Context, captainID uuid.UUID) (*domain.CaptainPolicy, error)
	UpdatePolicy(ctx context.Context, policy *domain.CaptainPolicy) (*domain.CaptainPolicy, error)
}

// AvailabilityRepository интерфейс репозитория окон и blackout дат
type AvailabilityRepository interface {
	ListWindows(ctx context.Context, captainID uuid.UUID) ([]*domain.AvailabilityWindow, error)
	ReplaceWindows(ctx context.Context, captainID uuid.UUID, windows []*domain.AvailabilityWindow) error
	GetBlackoutsInRange(ctx context.Context, captainID uuid.UUID, from, to time.Time) ([]*domain.BlackoutDate, error)
	AddBlackout(ctx context.Context, blackout *domain.BlackoutDate) (*domain.BlackoutDate, error)
	DeleteBlackout(ctx context.Context, captainID uuid.UUID, date time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
