package reschedule_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// Request модель запроса на перенос бронирования
type Request struct {
	ActorID   uuid.UUID // Из заголовка X-User-ID, должен совпадать с капитаном
	BookingID uuid.UUID
	Start     time.Time
}

// Response модель ответа с перенесенным бронированием
type Response struct {
	Booking        *domain.Booking
	PreviousStatus domain.BookingStatus
}
