package check_conflicts

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid conflict check input", domain.ErrValidation)

	// ErrCaptainNotFound возвращается, когда капитан не найден
	ErrCaptainNotFound = fmt.Errorf("%w: captain not found", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_conflicts: internal error")
)
