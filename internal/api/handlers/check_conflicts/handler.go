package check_conflicts

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	"github.com/m04kA/SMC-CharterService/internal/domain"
	checkConflicts "github.com/m04kA/SMC-CharterService/internal/usecase/check_conflicts"
)

const (
	msgInvalidCaptainID = "некорректный ID капитана"
	msgInvalidRequest   = "некорректные параметры запроса"
	msgCaptainNotFound  = "капитан не найден"
)

type Handler struct {
	useCase CheckConflictsUseCase
	logger  Logger
}

func NewHandler(useCase CheckConflictsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/captains/{captainId}/conflicts/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, err := uuid.Parse(mux.Vars(r)["captainId"])
	if err != nil {
		h.logger.Warn("POST /captains/{id}/conflicts/check - Invalid captain ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCaptainID)
		return
	}

	var req CheckConflictsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /captains/{id}/conflicts/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(captainID))
	if err != nil {
		switch {
		case errors.Is(err, checkConflicts.ErrCaptainNotFound):
			h.logger.Warn("POST /captains/{id}/conflicts/check - Captain not found: captain_id=%s", captainID)
			handlers.RespondNotFound(w, msgCaptainNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /captains/{id}/conflicts/check - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /captains/{id}/conflicts/check - Failed to check conflicts: captain_id=%s, error=%v", captainID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /captains/{id}/conflicts/check - Checked: captain_id=%s, has_conflict=%t", captainID, result.HasConflict)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
