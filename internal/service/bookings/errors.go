package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: booking not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = fmt.Errorf("%w: booking belongs to another guest or captain", domain.ErrAccessDenied)

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = fmt.Errorf("%w: booking cannot be cancelled", domain.ErrValidation)

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = fmt.Errorf("%w: status transition is not allowed", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
