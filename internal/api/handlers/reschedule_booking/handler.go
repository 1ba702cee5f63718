package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	"github.com/m04kA/SMC-CharterService/internal/api/middleware"
	"github.com/m04kA/SMC-CharterService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-CharterService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса, start ожидается в формате RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "переносить бронирование может только капитан"
	msgCannotReschedule   = "бронирование в текущем статусе нельзя перенести"
	msgSlotNotAvailable   = "this time is no longer available"
	msgInvalidStart       = "выбранное время недоступно для бронирования"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Access denied: booking_id=%s, user_id=%s", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Slot not available: booking_id=%s, start=%s", bookingID, req.Start)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, rescheduleBooking.ErrCannotReschedule):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Cannot reschedule: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgCannotReschedule)

		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUnavailable):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid start: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidStart)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Related entity not found: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /bookings/{id}/reschedule - Failed to reschedule: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reschedule - Booking rescheduled: booking_id=%s, start=%s",
		bookingID, result.Booking.ScheduledStart)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
