package booking

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// Коды SQLSTATE PostgreSQL, означающие проигранную гонку за слот
const (
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: booking.repository: booking not found", domain.ErrNotFound)

	// ErrSlotNotAvailable возвращается, когда база отклонила пересекающееся бронирование
	ErrSlotNotAvailable = fmt.Errorf("%w: booking.repository: slot not available", domain.ErrConflict)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)

// IsConflict проверяет, что ошибка PostgreSQL означает конфликт бронирований:
// нарушение exclusion constraint или сбой сериализации транзакции
func IsConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case pgExclusionViolation, pgSerializationFailure, pgDeadlockDetected:
		return true
	default:
		return false
	}
}

// mapWriteError превращает конфликт в ErrSlotNotAvailable, остальные ошибки в ErrExecQuery
func mapWriteError(op string, err error) error {
	if IsConflict(err) {
		return fmt.Errorf("%w: %s: %w", ErrSlotNotAvailable, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrExecQuery, op, err)
}
