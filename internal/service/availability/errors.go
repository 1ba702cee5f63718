package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

var (
	// ErrCaptainNotFound возвращается, когда капитан не найден
	ErrCaptainNotFound = fmt.Errorf("%w: captain not found", domain.ErrNotFound)

	// ErrBlackoutNotFound возвращается, когда на дату нет blackout
	ErrBlackoutNotFound = fmt.Errorf("%w: blackout not found", domain.ErrNotFound)

	// ErrBlackoutAlreadyExists возвращается при повторном закрытии даты
	ErrBlackoutAlreadyExists = fmt.Errorf("%w: date is already blacked out", domain.ErrConflict)

	// ErrAccessDenied возвращается, когда настройки меняет не сам капитан
	ErrAccessDenied = fmt.Errorf("%w: only the captain can manage availability", domain.ErrAccessDenied)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
