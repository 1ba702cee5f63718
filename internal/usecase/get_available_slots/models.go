package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// Исходы расчета (метка метрики)
const (
	outcomeOpen         = "open"
	outcomePast         = "past"
	outcomeBeyondWindow = "beyond_window"
	outcomeBlackout     = "blackout"
	outcomeClosed       = "closed"
	outcomeHibernating  = "hibernating"

	modeDepartures    = "departures"
	modeFixedInterval = "fixed_interval"
)

// Request модель запроса на получение доступных слотов.
// Идентификаторы и дата приходят как есть и валидируются в usecase.
type Request struct {
	CaptainID  string // UUID капитана
	TripTypeID string // UUID типа поездки
	Date       string // Календарная дата YYYY-MM-DD в поясе капитана
}

// Response модель ответа со списком доступных слотов
type Response struct {
	CaptainID  uuid.UUID
	TripTypeID uuid.UUID
	Date       time.Time // Календарная дата (UTC полночь)
	Timezone   string
	Slots      []domain.Slot
	DateInfo   domain.DateAvailabilitySummary
}
