package operations

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	TracerName = "likecli.operation"
)

// OperationTracer provides OpenTelemetry spans for operations and their steps
type OperationTracer struct {
	tracer trace.Tracer
}

// NewOperationTracer creates a new operation tracer. A nil tracer uses the
// globally registered provider.
func NewOperationTracer(tracer trace.Tracer) *OperationTracer {
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	return &OperationTracer{tracer: tracer}
}

// TraceOperationExecution creates a span for the entire operation execution
func (pt *OperationTracer) TraceOperationExecution(ctx context.Context, operationID string, req OperationRequest) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, "operation.execute",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.String("operation.input_dir", req.InputDir),
			attribute.String("operation.destination", req.Destination),
			attribute.String("operation.format", req.Format),
		),
	)
}

// TraceStepExecution creates a span for an individual step
func (pt *OperationTracer) TraceStepExecution(ctx context.Context, operationID, stepID string) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, "operation.step."+stepID,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.String("step.id", stepID),
		),
	)
}

// RecordStepResult ends a step span with its outcome
func (pt *OperationTracer) RecordStepResult(span trace.Span, duration time.Duration, err error) {
	span.SetAttributes(attribute.Float64("step.duration_seconds", duration.Seconds()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("step.error_type", string(GetErrorType(err))))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// RecordOperationCompletion ends the operation span with its final status
func (pt *OperationTracer) RecordOperationCompletion(span trace.Span, duration time.Duration, status OperationStatusValue, err error) {
	span.SetAttributes(
		attribute.String("operation.status", string(status)),
		attribute.Float64("operation.duration_seconds", duration.Seconds()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
