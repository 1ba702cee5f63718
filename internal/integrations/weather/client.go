// Package weather получает прогнозы погоды для капитанов, решающих о weather hold.
// К расчету слотов не относится.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-CharterService/pkg/timezone"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса прогноза погоды
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Validate проверяет координаты и дату запроса
func (q Query) Validate() error {
	if q.Latitude < -90 || q.Latitude > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalidQuery)
	}
	if q.Longitude < -180 || q.Longitude > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalidQuery)
	}
	if _, err := timezone.ParseDate(q.Date); err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidQuery)
	}
	return nil
}

// GetForecast запрашивает прогноз у внешнего сервиса
func (c *Client) GetForecast(ctx context.Context, q Query) (*Forecast, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(q.Latitude, 'f', CoordinatePrecision, 64))
	params.Set("lon", strconv.FormatFloat(q.Longitude, 'f', CoordinatePrecision, 64))
	params.Set("date", q.Date)
	endpoint := fmt.Sprintf("%s/v1/marine-forecast?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, ErrInvalidQuery
	case http.StatusNotFound:
		return nil, ErrForecastNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var forecast Forecast
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &forecast, nil
}
