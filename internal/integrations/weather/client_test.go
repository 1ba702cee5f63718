package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_GetForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/marine-forecast", r.URL.Path)
		assert.Equal(t, "25.76", r.URL.Query().Get("lat"))
		assert.Equal(t, "-80.19", r.URL.Query().Get("lon"))
		assert.Equal(t, "2026-10-19", r.URL.Query().Get("date"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"latitude":25.7617,"longitude":-80.1918,"date":"2026-10-19","summary":"Light chop","windSpeedKnots":12.5,"waveHeightMeters":0.9}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nopLogger{})

	forecast, err := client.GetForecast(context.Background(), Query{Latitude: 25.7617, Longitude: -80.1918, Date: "2026-10-19"})
	require.NoError(t, err)
	assert.Equal(t, "Light chop", forecast.Summary)
	assert.InDelta(t, 12.5, forecast.WindSpeedKnots, 0.001)
}

func TestClient_StatusCodes(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"not found", http.StatusNotFound, ErrForecastNotFound},
		{"bad request", http.StatusBadRequest, ErrInvalidQuery},
		{"server error", http.StatusBadGateway, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := NewClient(server.URL, time.Second, nopLogger{}).
				GetForecast(context.Background(), Query{Latitude: 1, Longitude: 1, Date: "2026-10-19"})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestQuery_Validate(t *testing.T) {
	assert.NoError(t, Query{Latitude: 45, Longitude: 100, Date: "2026-10-19"}.Validate())
	assert.ErrorIs(t, Query{Latitude: 91, Date: "2026-10-19"}.Validate(), ErrInvalidQuery)
	assert.ErrorIs(t, Query{Longitude: -181, Date: "2026-10-19"}.Validate(), ErrInvalidQuery)
	assert.ErrorIs(t, Query{Date: "tomorrow"}.Validate(), ErrInvalidQuery)
}
