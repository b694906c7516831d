package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

func TestBookingMetricsCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.Observe("create_appointment", "ok", time.Now())
	m.Observe("create_appointment", "slot_unavailable", time.Now())
	m.SlotBooked()
	m.SlotBooked()
	m.SlotReleased()
	m.AssignmentConflict()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("create_appointment", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.slots.WithLabelValues("book")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.slots.WithLabelValues("release")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.conflicts))
}

func TestNilBookingMetrics(t *testing.T) {
	var m *BookingMetrics
	m.Observe("x", "ok", time.Now())
	m.SlotBooked()
	m.SlotReleased()
	m.AssignmentConflict()
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "slot_unavailable", Outcome(httperr.ErrSlotUnavailable))
	assert.Equal(t, "not_found", Outcome(httperr.ErrNotFound("doctor")))
	assert.Equal(t, "invalid", Outcome(httperr.ErrField("date", "bad")))
	assert.Equal(t, "conflict", Outcome(httperr.ErrConflict(nil)))
	assert.Equal(t, "error", Outcome(errors.New("db down")))
}
