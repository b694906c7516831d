package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BookingMetrics counts slot transitions and use case outcomes. A nil
// *BookingMetrics is valid and records nothing.
type BookingMetrics struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	slots      *prometheus.CounterVec
	conflicts  prometheus.Counter
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "operations_total",
			Help:      "Booking use case executions by operation and outcome",
		}, []string{"operation", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "operation_duration_seconds",
			Help:      "Duration of booking use cases",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		slots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "slots",
			Name:      "transitions_total",
			Help:      "Slot state transitions",
		}, []string{"transition"}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "schedule",
			Name:      "assignment_conflicts_total",
			Help:      "Template assignments rejected because of overlapping slots",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.operations, m.latency, m.slots, m.conflicts)
	return m
}

// Observe records one execution. outcome is derived by the caller from the error.
func (m *BookingMetrics) Observe(operation, outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.latency.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *BookingMetrics) SlotBooked() {
	if m == nil {
		return
	}
	m.slots.WithLabelValues("book").Inc()
}

func (m *BookingMetrics) SlotReleased() {
	if m == nil {
		return
	}
	m.slots.WithLabelValues("release").Inc()
}

func (m *BookingMetrics) AssignmentConflict() {
	if m == nil {
		return
	}
	m.conflicts.Inc()
}
