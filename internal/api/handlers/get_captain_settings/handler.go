package get_captain_settings

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
	msgNotFound         = "капитан не найден"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/captains/{captainId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, err := uuid.Parse(mux.Vars(r)["captainId"])
	if err != nil {
		h.logger.Warn("GET /captains/{id}/settings - Invalid captain ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCaptainID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /captains/{id}/settings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetSettings(r.Context(), captainID, userID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrCaptainNotFound):
			h.logger.Warn("GET /captains/{id}/settings - Captain not found: captain_id=%s", captainID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("GET /captains/{id}/settings - Access denied: captain_id=%s, user_id=%s", captainID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /captains/{id}/settings - Failed to get settings: captain_id=%s, error=%v", captainID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /captains/{id}/settings - Settings retrieved successfully: captain_id=%s", captainID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
