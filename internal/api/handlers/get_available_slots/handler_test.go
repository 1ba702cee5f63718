package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CharterService/internal/usecase/get_available_slots"
)

type stubUseCase struct {
	resp *getAvailableSlots.Response
	err  error
	got  *getAvailableSlots.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc GetAvailableSlotsUseCase, url string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/captains/{captainId}/trip-types/{tripTypeId}/available-slots",
		NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	captainID, tripTypeID := uuid.New(), uuid.New()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		CaptainID:  captainID,
		TripTypeID: tripTypeID,
		Date:       time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		Timezone:   "America/New_York",
		Slots: []domain.Slot{
			{Start: time.Date(2026, 10, 19, 6, 0, 0, 0, loc), End: time.Date(2026, 10, 19, 10, 0, 0, 0, loc)},
		},
		DateInfo: domain.DateAvailabilitySummary{DayOfWeek: time.Monday, HasAvailability: true, HasActiveWindow: true},
	}}

	rec := serve(uc, fmt.Sprintf("/api/v1/captains/%s/trip-types/%s/available-slots?date=2026-10-19", captainID, tripTypeID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-10-19", uc.got.Date)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "2026-10-19T10:00:00Z", body.Slots[0].Start)
	assert.Equal(t, "2026-10-19T14:00:00Z", body.Slots[0].End)
	assert.Nil(t, body.UnavailableReason)
	assert.True(t, body.DateInfo.HasAvailability)
}

func TestHandle_HibernatingIsEmptyOK(t *testing.T) {
	uc := &stubUseCase{err: fmt.Errorf("wrapped: %w", &domain.UnavailableError{Kind: domain.UnavailableHibernating})}

	rec := serve(uc, "/api/v1/captains/c/trip-types/t/available-slots?date=2026-10-19")
	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Slots)
	require.NotNil(t, body.UnavailableReason)
	assert.Equal(t, "hibernating", *body.UnavailableReason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		url  string
		err  error
		want int
	}{
		{"missing date", "/api/v1/captains/c/trip-types/t/available-slots", nil, http.StatusBadRequest},
		{"validation", "/api/v1/captains/c/trip-types/t/available-slots?date=x", getAvailableSlots.ErrInvalidInput, http.StatusBadRequest},
		{"captain not found", "/api/v1/captains/c/trip-types/t/available-slots?date=2026-10-19", getAvailableSlots.ErrCaptainNotFound, http.StatusNotFound},
		{"trip type not found", "/api/v1/captains/c/trip-types/t/available-slots?date=2026-10-19", getAvailableSlots.ErrTripTypeNotFound, http.StatusNotFound},
		{"internal", "/api/v1/captains/c/trip-types/t/available-slots?date=2026-10-19", getAvailableSlots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, tt.url)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
