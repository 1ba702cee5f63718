package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	GuestID    uuid.UUID // Из заголовка X-User-ID
	CaptainID  uuid.UUID
	TripTypeID uuid.UUID
	Start      time.Time // Абсолютное время начала выбранного слота
	PartySize  int
	Notes      *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
