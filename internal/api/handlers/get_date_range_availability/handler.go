package get_date_range_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	"github.com/m04kA/SMC-CharterService/internal/domain"
	getDateRange "github.com/m04kA/SMC-CharterService/internal/usecase/get_date_range_availability"
)

const (
	defaultDays = 30

	msgInvalidDays     = "некорректное количество дней"
	msgInvalidRequest  = "некорректные параметры запроса"
	msgCaptainNotFound = "капитан не найден"
)

type Handler struct {
	useCase GetDateRangeAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetDateRangeAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/captains/{captainId}/availability
// Query params: days (optional, по умолчанию 30)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID := mux.Vars(r)["captainId"]

	days := defaultDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.logger.Warn("GET /captains/{id}/availability - Invalid days: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		days = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getDateRange.Request{CaptainID: captainID, Days: days})
	if err != nil {
		if kind, ok := domain.UnavailableKindOf(err); ok {
			h.logger.Info("GET /captains/{id}/availability - Captain unavailable: captain_id=%s, reason=%s", captainID, kind)
			handlers.RespondJSON(w, http.StatusOK, UnavailableResponse(captainID, kind))
			return
		}

		switch {
		case errors.Is(err, getDateRange.ErrCaptainNotFound):
			h.logger.Warn("GET /captains/{id}/availability - Captain not found: captain_id=%s", captainID)
			handlers.RespondNotFound(w, msgCaptainNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /captains/{id}/availability - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /captains/{id}/availability - Failed to get availability: captain_id=%s, error=%v", captainID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /captains/{id}/availability - Availability retrieved: captain_id=%s, days=%d", captainID, result.Days)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
