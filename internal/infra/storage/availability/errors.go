package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

var (
	// ErrBlackoutNotFound возвращается, когда на дату нет blackout
	ErrBlackoutNotFound = fmt.Errorf("%w: availability.repository: blackout not found", domain.ErrNotFound)

	// ErrDuplicateBlackout возвращается при повторном добавлении blackout на ту же дату
	ErrDuplicateBlackout = fmt.Errorf("%w: availability.repository: blackout already exists", domain.ErrConflict)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
