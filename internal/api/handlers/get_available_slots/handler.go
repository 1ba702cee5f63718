package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	"github.com/m04kA/SMC-CharterService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CharterService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate      = "дата обязательна"
	msgInvalidRequest   = "некорректные параметры запроса"
	msgCaptainNotFound  = "капитан не найден"
	msgTripTypeNotFound = "тип поездки не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/captains/{captainId}/trip-types/{tripTypeId}/available-slots
// Query params: date (required, YYYY-MM-DD в поясе капитана)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /captains/{id}/trip-types/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq := &getAvailableSlots.Request{
		CaptainID:  vars["captainId"],
		TripTypeID: vars["tripTypeId"],
		Date:       dateStr,
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if kind, ok := domain.UnavailableKindOf(err); ok {
			h.logger.Info("GET /captains/{id}/trip-types/{id}/available-slots - Captain unavailable: captain_id=%s, reason=%s",
				useCaseReq.CaptainID, kind)
			handlers.RespondJSON(w, http.StatusOK, UnavailableResponse(useCaseReq, kind))
			return
		}

		switch {
		case errors.Is(err, getAvailableSlots.ErrCaptainNotFound):
			h.logger.Warn("GET /captains/{id}/trip-types/{id}/available-slots - Captain not found: captain_id=%s", useCaseReq.CaptainID)
			handlers.RespondNotFound(w, msgCaptainNotFound)

		case errors.Is(err, getAvailableSlots.ErrTripTypeNotFound):
			h.logger.Warn("GET /captains/{id}/trip-types/{id}/available-slots - Trip type not found: trip_type_id=%s", useCaseReq.TripTypeID)
			handlers.RespondNotFound(w, msgTripTypeNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /captains/{id}/trip-types/{id}/available-slots - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /captains/{id}/trip-types/{id}/available-slots - Failed to get slots: captain_id=%s, trip_type_id=%s, error=%v",
				useCaseReq.CaptainID, useCaseReq.TripTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /captains/{id}/trip-types/{id}/available-slots - Slots retrieved successfully: captain_id=%s, date=%s, slots_count=%d",
		useCaseReq.CaptainID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
