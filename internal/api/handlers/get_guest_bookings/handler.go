package get_guest_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	"github.com/m04kA/SMC-CharterService/internal/api/middleware"
	"github.com/m04kA/SMC-CharterService/internal/service/bookings"
	"github.com/m04kA/SMC-CharterService/internal/service/bookings/models"
)

const (
	msgInvalidGuestID = "некорректный ID гостя"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidParams  = "некорректные параметры запроса"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/guests/{guestId}/bookings
// Query params: status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	guestID, err := uuid.Parse(mux.Vars(r)["guestId"])
	if err != nil {
		h.logger.Warn("GET /guests/{guestId}/bookings - Invalid guest ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGuestID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /guests/{guestId}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq := &models.GetGuestBookingsRequest{
		UserID:  userID,
		GuestID: guestID,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		serviceReq.Status = &status
	}
	if raw := r.URL.Query().Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /guests/{guestId}/bookings - Invalid includeInactive: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		serviceReq.IncludeInactive = includeInactive
	}

	result, err := h.service.GetGuestBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /guests/{guestId}/bookings - Access denied: guest_id=%s, user_id=%s", guestID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /guests/{guestId}/bookings - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /guests/{guestId}/bookings - Failed to get bookings: guest_id=%s, error=%v", guestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /guests/{guestId}/bookings - Bookings retrieved successfully: guest_id=%s, count=%d",
		guestID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
