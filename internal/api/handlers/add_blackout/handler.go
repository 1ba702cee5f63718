package add_blackout

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
	msgInvalidDate        = "некорректная дата, ожидается YYYY-MM-DD"
	msgAlreadyExists      = "дата уже закрыта"
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

// Handle POST /api/v1/captains/{captainId}/blackouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, err := uuid.Parse(mux.Vars(r)["captainId"])
	if err != nil {
		h.logger.Warn("POST /captains/{id}/blackouts - Invalid captain ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCaptainID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /captains/{id}/blackouts - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.AddBlackoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /captains/{id}/blackouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.CaptainID = captainID

	result, err := h.service.AddBlackout(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrCaptainNotFound):
			h.logger.Warn("POST /captains/{id}/blackouts - Captain not found: captain_id=%s", captainID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /captains/{id}/blackouts - Access denied: captain_id=%s, user_id=%s", captainID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrBlackoutAlreadyExists):
			h.logger.Warn("POST /captains/{id}/blackouts - Already closed: captain_id=%s, date=%s", captainID, req.Date)
			handlers.RespondConflict(w, msgAlreadyExists)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /captains/{id}/blackouts - Invalid date: captain_id=%s, date=%s", captainID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("POST /captains/{id}/blackouts - Failed to add blackout: captain_id=%s, error=%v", captainID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /captains/{id}/blackouts - Date closed: captain_id=%s, date=%s", captainID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
