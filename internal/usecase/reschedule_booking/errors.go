package reschedule_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: booking not found", domain.ErrNotFound)

	// ErrCaptainNotFound возвращается, когда капитан бронирования не найден
	ErrCaptainNotFound = fmt.Errorf("%w: captain not found", domain.ErrNotFound)

	// ErrTripTypeNotFound возвращается, когда тип поездки бронирования не найден
	ErrTripTypeNotFound = fmt.Errorf("%w: trip type not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда переносит не капитан бронирования
	ErrAccessDenied = fmt.Errorf("%w: only the captain can reschedule a booking", domain.ErrAccessDenied)

	// ErrCannotReschedule возвращается, когда статус бронирования не допускает переноса
	ErrCannotReschedule = fmt.Errorf("%w: booking cannot be rescheduled", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInvalidTripType возвращается при некорректной конфигурации типа поездки
	ErrInvalidTripType = fmt.Errorf("%w: invalid trip type configuration", domain.ErrValidation)

	// ErrSlotNotAvailable возвращается, когда новое время занято
	ErrSlotNotAvailable = fmt.Errorf("%w: this time is no longer available", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
