package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CharterService/pkg/metrics"
)

func TestAuth(t *testing.T) {
	userID := uuid.New()
	var got uuid.UUID
	handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		got, ok = GetUserID(r.Context())
		require.True(t, ok)
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", userID.String(), http.StatusNoContent},
		{"missing", "", http.StatusUnauthorized},
		{"not a uuid", "42", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(HeaderUserID, tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
	assert.Equal(t, userID, got)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2, nil)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2"))

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))

	now = now.Add(visitorTTL + time.Minute)
	rl.Cleanup()
	assert.Empty(t, rl.visitors)
}

func TestClientIP(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.168.1.10"})
	require.NoError(t, err)

	tests := []struct {
		name      string
		trusted   bool
		remote    string
		forwarded string
		want      string
	}{
		{"no proxies configured ignores header", false, "198.51.100.4:4000", "203.0.113.7", "198.51.100.4"},
		{"untrusted peer ignores header", true, "198.51.100.4:4000", "203.0.113.7", "198.51.100.4"},
		{"trusted proxy", true, "10.1.2.3:4000", "203.0.113.7", "203.0.113.7"},
		{"spoofed hop left of real client", true, "10.1.2.3:4000", "1.2.3.4, 203.0.113.7", "203.0.113.7"},
		{"chain of trusted proxies", true, "192.168.1.10:4000", "203.0.113.7, 10.0.0.5", "203.0.113.7"},
		{"garbage hop", true, "10.1.2.3:4000", "not-an-ip", "10.1.2.3"},
		{"trusted proxy without header", true, "10.1.2.3:4000", "", "10.1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var proxies []netip.Prefix
			if tt.trusted {
				proxies = trusted
			}
			rl := NewRateLimiter(1, 1, proxies)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, rl.clientIP(req))
		})
	}
}

func TestRateLimiter_RotatingForwardedForDoesNotBypassLimit(t *testing.T) {
	rl := NewRateLimiter(1, 1, nil)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for _, spoofed := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "198.51.100.4:4000"
		req.Header.Set("X-Forwarded-For", spoofed)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestParseTrustedProxies_Invalid(t *testing.T) {
	_, err := ParseTrustedProxies([]string{"10.0.0.0/33"})
	assert.Error(t, err)
	_, err = ParseTrustedProxies([]string{"proxy.local"})
	assert.Error(t, err)
}

func TestMetrics_RouteTemplate(t *testing.T) {
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())

	router := mux.NewRouter()
	router.Use(Metrics(m))
	router.HandleFunc("/api/v1/bookings/{bookingId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/abc", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/bookings/{bookingId}", "404")))
}
