package update_captain_settings

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	"github.com/m04kA/SMC-CharterService/internal/api/middleware"
	"github.com/m04kA/SMC-CharterService/internal/service/availability"
	"github.com/m04kA/SMC-CharterService/internal/service/availability/models"
)

const (
	msgInvalidCaptainID   = "некорректный ID капитана"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "капитан не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidData        = "некорректные настройки доступности"
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

// Handle PUT /api/v1/captains/{captainId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, err := uuid.Parse(mux.Vars(r)["captainId"])
	if err != nil {
		h.logger.Warn("PUT /captains/{id}/settings - Invalid captain ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCaptainID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /captains/{id}/settings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /captains/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.CaptainID = captainID

	result, err := h.service.UpdateSettings(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrCaptainNotFound):
			h.logger.Warn("PUT /captains/{id}/settings - Captain not found: captain_id=%s", captainID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /captains/{id}/settings - Access denied: captain_id=%s, user_id=%s", captainID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /captains/{id}/settings - Invalid data: captain_id=%s, error=%v", captainID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /captains/{id}/settings - Failed to update settings: captain_id=%s, error=%v", captainID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /captains/{id}/settings - Settings updated successfully: captain_id=%s", captainID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
