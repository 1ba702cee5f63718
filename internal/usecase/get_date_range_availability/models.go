package get_date_range_availability

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// Request модель запроса обзора доступности по датам
type Request struct {
	CaptainID string // UUID капитана
	Days      int    // Количество дней начиная с сегодняшнего (обрезается до горизонта)
}

// Response сводка по каждой дате диапазона
type Response struct {
	CaptainID uuid.UUID
	Timezone  string
	Days      int // Фактическое количество дней после обрезки
	Dates     []domain.DateAvailabilitySummary
}
