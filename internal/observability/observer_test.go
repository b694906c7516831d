package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
)

func TestOperationLogsOnlyUnexpectedErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	obs := Observer{Metrics: metrics.NewBookingMetrics(prometheus.NewRegistry()), Log: zap.New(core)}

	_, op := obs.Start(context.Background(), "create_appointment")
	op.End(httperr.ErrSlotUnavailable)
	assert.Zero(t, logs.Len())

	_, op = obs.Start(context.Background(), "create_appointment")
	op.End(errors.New("connection reset"), zap.Uint("doctor_id", 2), zap.String("date", "2025-10-06"))

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "create_appointment", ctx["operation"])
	assert.Equal(t, "2025-10-06", ctx["date"])
}

func TestZeroObserver(t *testing.T) {
	var obs Observer
	_, op := obs.Start(context.Background(), "noop")
	op.End(errors.New("boom"))
	obs.SlotBooked()
	obs.SlotReleased()
}
