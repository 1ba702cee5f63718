package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	// Доменные метрики
	SlotComputations *prometheus.CounterVec
	SlotsReturned    *prometheus.HistogramVec
	BookingConflicts *prometheus.CounterVec
	BookingsCreated  *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в указанном реестре (используется в тестах)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		SlotComputations: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_computations_total",
			Help:        "Slot computations by outcome (open, past, blackout, beyond_window, closed, hibernating)",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		SlotsReturned: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "slots_returned",
			Help:        "Number of bookable slots returned per request",
			ConstLabels: constLabels,
			Buckets:     []float64{0, 1, 2, 4, 8, 16, 32},
		}, []string{"mode"}),

		BookingConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Booking attempts rejected because the slot was taken",
			ConstLabels: constLabels,
		}, []string{"stage"}),

		BookingsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings committed",
			ConstLabels: constLabels,
		}, []string{"status"}),
	}
}

// ObserveSlots учитывает расчет слотов: исход и количество слотов.
// Безопасно вызывать на nil (метрики выключены).
func (m *Metrics) ObserveSlots(outcome, mode string, slots int) {
	if m == nil {
		return
	}
	m.SlotComputations.WithLabelValues(outcome).Inc()
	if outcome == "open" {
		m.SlotsReturned.WithLabelValues(mode).Observe(float64(slots))
	}
}

// ObserveConflict учитывает найденный конфликт бронирований
func (m *Metrics) ObserveConflict(stage string) {
	if m == nil {
		return
	}
	m.BookingConflicts.WithLabelValues(stage).Inc()
}

// ObserveBookingCreated учитывает зафиксированное бронирование
func (m *Metrics) ObserveBookingCreated(status string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(status).Inc()
}
