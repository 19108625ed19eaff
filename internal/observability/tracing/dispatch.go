package tracing

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const dispatchTracerName = "github.com/KasumiMercury/primind-event-reminder/internal/service/dispatch"

func DispatchTracer() trace.Tracer {
	return otel.Tracer(dispatchTracerName)
}

func StartTickSpan(ctx context.Context, runID string, now time.Time) (context.Context, trace.Span) {
	return DispatchTracer().Start(ctx, "reminder.tick",
		trace.WithAttributes(
			attribute.String("tick.run_id", runID),
			attribute.String("tick.now", now.Format(time.RFC3339)),
		),
	)
}

func StartPairSpan(ctx context.Context, eventID, userID string, target time.Time) (context.Context, trace.Span) {
	return DispatchTracer().Start(ctx, "reminder.pair",
		trace.WithAttributes(
			attribute.String("event_id", eventID),
			attribute.String("user_id", userID),
			attribute.String("pair.target_time", target.Format(time.RFC3339)),
		),
	)
}

func StartDeliverySpan(ctx context.Context, adapter string) (context.Context, trace.Span) {
	return DispatchTracer().Start(ctx, "reminder.delivery",
		trace.WithAttributes(
			attribute.String("delivery.adapter", adapter),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordTickResult(span trace.Span, candidates, due, sent, skipped, failed int, err error) {
	span.SetAttributes(
		attribute.Int("tick.candidate_count", candidates),
		attribute.Int("tick.due_count", due),
		attribute.Int("tick.sent_count", sent),
		attribute.Int("tick.skipped_count", skipped),
		attribute.Int("tick.failed_count", failed),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func RecordPairOutcome(span trace.Span, outcome string, err error) {
	span.SetAttributes(attribute.String("pair.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// InjectToHTTPRequest propagates the span in ctx to an outgoing request.
func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

// ExtractFromHTTPRequest continues a trace started by the caller.
func ExtractFromHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.HeaderCarrier(req.Header))
}
