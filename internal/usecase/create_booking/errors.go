package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

var (
	// ErrCaptainNotFound возвращается, когда капитан не найден
	ErrCaptainNotFound = fmt.Errorf("%w: captain not found", domain.ErrNotFound)

	// ErrTripTypeNotFound возвращается, когда тип поездки не найден или принадлежит другому капитану
	ErrTripTypeNotFound = fmt.Errorf("%w: trip type not found", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInvalidTripType возвращается при некорректной конфигурации типа поездки
	ErrInvalidTripType = fmt.Errorf("%w: invalid trip type configuration", domain.ErrValidation)

	// ErrSlotNotAvailable возвращается, когда время уже занято (в том числе проигранная гонка)
	ErrSlotNotAvailable = fmt.Errorf("%w: this time is no longer available", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
