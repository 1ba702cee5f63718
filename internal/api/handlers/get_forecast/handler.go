package get_forecast

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/integrations/weather"
)

const (
	msgInvalidParams = "некорректные параметры запроса, ожидаются lat, lon и date"
	msgNotFound      = "прогноз недоступен"
	msgUnavailable   = "сервис прогноза недоступен"
)

type Handler struct {
	provider ForecastProvider
	logger   Logger
}

func NewHandler(provider ForecastProvider, logger Logger) *Handler {
	return &Handler{
		provider: provider,
		logger:   logger,
	}
}

// Handle GET /api/v1/forecast
// Query params: lat, lon, date (обязательные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q, err := ToQuery(query.Get("lat"), query.Get("lon"), query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /forecast - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.provider.Get(r.Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, weather.ErrForecastNotFound):
			h.logger.Warn("GET /forecast - Forecast not found: lat=%.4f, lon=%.4f, date=%s", q.Latitude, q.Longitude, q.Date)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /forecast - Invalid query: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /forecast - Failed to get forecast: error=%v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgUnavailable)
		}
		return
	}

	h.logger.Info("GET /forecast - Forecast retrieved: date=%s, stale=%t", q.Date, result.Stale)
	handlers.RespondJSON(w, http.StatusOK, result)
}
