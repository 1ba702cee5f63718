package remove_blackout

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	"github.com/m04kA/SMC-CharterService/internal/api/middleware"
	"github.com/m04kA/SMC-CharterService/internal/service/availability"
)

const (
	msgInvalidCaptainID = "некорректный ID капитана"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "на эту дату нет закрытия"
	msgForbidden        = "доступ запрещен"
	msgInvalidDate      = "некорректная дата, ожидается YYYY-MM-DD"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/captains/{captainId}/blackouts/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	captainID, err := uuid.Parse(vars["captainId"])
	if err != nil {
		h.logger.Warn("DELETE /captains/{id}/blackouts/{date} - Invalid captain ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCaptainID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /captains/{id}/blackouts/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	date := vars["date"]
	if err := h.service.RemoveBlackout(r.Context(), captainID, userID, date); err != nil {
		switch {
		case errors.Is(err, availability.ErrBlackoutNotFound):
			h.logger.Warn("DELETE /captains/{id}/blackouts/{date} - Not found: captain_id=%s, date=%s", captainID, date)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /captains/{id}/blackouts/{date} - Access denied: captain_id=%s, user_id=%s", captainID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("DELETE /captains/{id}/blackouts/{date} - Invalid date: %s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("DELETE /captains/{id}/blackouts/{date} - Failed to remove blackout: captain_id=%s, error=%v", captainID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /captains/{id}/blackouts/{date} - Date reopened: captain_id=%s, date=%s", captainID, date)
	w.WriteHeader(http.StatusNoContent)
}
