package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.ObserveSlots("open", "fixed_interval", 3)
	m.ObserveSlots("blackout", "fixed_interval", 0)
	m.ObserveConflict("write")
	m.ObserveConflict("write")
	m.ObserveBookingCreated("pending_deposit")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotComputations.WithLabelValues("open")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotComputations.WithLabelValues("blackout")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SlotsReturned))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingConflicts.WithLabelValues("write")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsCreated.WithLabelValues("pending_deposit")))
}

func TestObserve_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSlots("open", "departures", 1)
		m.ObserveConflict("advisory")
		m.ObserveBookingCreated("pending_deposit")
	})
}
