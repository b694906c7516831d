package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
)

var tracer = otel.Tracer("clinic-scheduler.usecase")

// Observer wraps a use case execution in a span, a metrics sample and, for
// unexpected errors, an error log line. The zero value is usable.
type Observer struct {
	Metrics *metrics.BookingMetrics
	Log     *zap.Logger
}

type Operation struct {
	name    string
	started time.Time
	span    trace.Span
	obs     Observer
}

func (o Observer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *Operation) {
	ctx, span := tracer.Start(ctx, name)
	span.SetAttributes(attrs...)
	return ctx, &Operation{name: name, started: time.Now(), span: span, obs: o}
}

// End closes the span. fields give the error log enough context to
// reproduce the failure (doctor, date, time).
func (op *Operation) End(err error, fields ...zap.Field) {
	defer op.span.End()

	outcome := metrics.Outcome(err)
	op.obs.Metrics.Observe(op.name, outcome, op.started)
	op.span.SetAttributes(attribute.String("outcome", outcome))

	if err == nil {
		return
	}
	op.span.RecordError(err)
	if outcome != "error" {
		return
	}
	op.span.SetStatus(codes.Error, err.Error())
	if op.obs.Log != nil {
		op.obs.Log.Error("operation failed",
			append([]zap.Field{zap.String("operation", op.name), zap.Error(err)}, fields...)...,
		)
	}
}

func (o Observer) SlotBooked()   { o.Metrics.SlotBooked() }
func (o Observer) SlotReleased() { o.Metrics.SlotReleased() }

func (o Observer) AssignmentConflict() { o.Metrics.AssignmentConflict() }
