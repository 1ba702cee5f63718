package weather

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

var (
	// ErrForecastNotFound возвращается, когда для точки или даты нет прогноза
	ErrForecastNotFound = fmt.Errorf("%w: forecast not available", domain.ErrNotFound)

	// ErrInvalidQuery возвращается при некорректных координатах или дате
	ErrInvalidQuery = fmt.Errorf("%w: invalid forecast query", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("weather client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса прогноза
	ErrInvalidResponse = errors.New("weather client: invalid response")

	// ErrCacheMiss возвращается хранилищем кеша при отсутствии ключа
	ErrCacheMiss = errors.New("weather cache: miss")
)
