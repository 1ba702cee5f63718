package captain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

var (
	// ErrCaptainNotFound возвращается, когда у капитана нет записи с политикой
	ErrCaptainNotFound = fmt.Errorf("%w: captain.repository: captain not found", domain.ErrNotFound)

	// ErrTripTypeNotFound возвращается, когда тип поездки не найден
	ErrTripTypeNotFound = fmt.Errorf("%w: captain.repository: trip type not found", domain.ErrNotFound)

	// ErrLockRequiresTx возвращается при попытке взять advisory lock вне транзакции
	ErrLockRequiresTx = errors.New("captain.repository: advisory lock requires a transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("captain.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("captain.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("captain.repository: failed to scan row")
)
