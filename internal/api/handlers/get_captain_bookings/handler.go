package get_captain_bookings

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	"github.com/m04kA/SMC-CharterService/internal/api/middleware"
	"github.com/m04kA/SMC-CharterService/internal/service/bookings"
)

const (
	msgInvalidCaptainID = "некорректный ID капитана"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidParams    = "некорректные параметры запроса"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/captains/{captainId}/bookings
// Query params: from, to, status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, err := uuid.Parse(mux.Vars(r)["captainId"])
	if err != nil {
		h.logger.Warn("GET /captains/{id}/bookings - Invalid captain ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCaptainID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /captains/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(captainID, userID,
		query.Get("from"), query.Get("to"), query.Get("status"), query.Get("includeInactive"))
	if err != nil {
		h.logger.Warn("GET /captains/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит, что запрашивает капитан
	result, err := h.service.GetCaptainBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /captains/{id}/bookings - Access denied: captain_id=%s, user_id=%s", captainID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /captains/{id}/bookings - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /captains/{id}/bookings - Failed to get bookings: captain_id=%s, error=%v", captainID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /captains/{id}/bookings - Bookings retrieved successfully: captain_id=%s, count=%d",
		captainID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
