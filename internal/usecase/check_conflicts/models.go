package check_conflicts

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// Стадии, на которых проверяются конфликты (метка метрики)
const (
	StageAdvisory = "advisory"
	StageWrite    = "write"
)

// Request модель запроса проверки конфликтов
type Request struct {
	CaptainID        uuid.UUID
	VesselID         *uuid.UUID // Проверять также бронирования судна (опционально)
	Start            time.Time
	End              time.Time
	BufferMinutes    *int       // nil - буфер из политики капитана
	ExcludeBookingID *uuid.UUID // Бронирование, которое переносится
	Stage            string     // advisory или write
}

// Response результат проверки
type Response struct {
	HasConflict         bool
	Reason              string
	BufferMinutes       int
	ConflictingBookings []*domain.Booking // Все конфликтующие бронирования по возрастанию начала
}
