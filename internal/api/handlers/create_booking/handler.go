package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	"github.com/m04kA/SMC-CharterService/internal/api/middleware"
	"github.com/m04kA/SMC-CharterService/internal/domain"
	createBooking "github.com/m04kA/SMC-CharterService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса, start ожидается в формате RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotNotAvailable   = "this time is no longer available"
	msgCaptainNotFound    = "капитан не найден"
	msgTripTypeNotFound   = "тип поездки не найден"
	msgCaptainUnavailable = "капитан временно не принимает бронирования"
	msgInvalidBooking     = "выбранное время недоступно для бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	guestID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(guestID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /bookings - Slot not available: guest_id=%s, captain_id=%s, start=%s",
				guestID, req.CaptainID, req.Start)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrCaptainNotFound):
			h.logger.Warn("POST /bookings - Captain not found: captain_id=%s", req.CaptainID)
			handlers.RespondNotFound(w, msgCaptainNotFound)

		case errors.Is(err, createBooking.ErrTripTypeNotFound):
			h.logger.Warn("POST /bookings - Trip type not found: captain_id=%s, trip_type_id=%s", req.CaptainID, req.TripTypeID)
			handlers.RespondNotFound(w, msgTripTypeNotFound)

		case errors.Is(err, domain.ErrUnavailable):
			h.logger.Warn("POST /bookings - Captain unavailable: captain_id=%s, error=%v", req.CaptainID, err)
			handlers.RespondBadRequest(w, msgCaptainUnavailable)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /bookings - Invalid booking: guest_id=%s, captain_id=%s, error=%v", guestID, req.CaptainID, err)
			handlers.RespondBadRequest(w, msgInvalidBooking)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: guest_id=%s, captain_id=%s, error=%v",
				guestID, req.CaptainID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, guest_id=%s, captain_id=%s",
		result.Booking.ID, guestID, req.CaptainID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
