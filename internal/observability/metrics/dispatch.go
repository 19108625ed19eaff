package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	dispatchMeterName = "reminder.dispatch"
)

type DispatchMetrics struct {
	ticks            metric.Int64Counter
	pairsProcessed   metric.Int64Counter
	remindersSent    metric.Int64Counter
	tickDuration     metric.Float64Histogram
	deliveryDuration metric.Float64Histogram
	markSentAttempts metric.Int64Histogram
}

func NewDispatchMetrics() (*DispatchMetrics, error) {
	meter := otel.Meter(dispatchMeterName)

	ticks, err := meter.Int64Counter(
		"reminder_ticks_total",
		metric.WithDescription("Total number of dispatch ticks"),
		metric.WithUnit("{tick}"),
	)
	if err != nil {
		return nil, err
	}

	pairsProcessed, err := meter.Int64Counter(
		"reminder_pairs_total",
		metric.WithDescription("Due (user, event) pairs by outcome"),
		metric.WithUnit("{pair}"),
	)
	if err != nil {
		return nil, err
	}

	remindersSent, err := meter.Int64Counter(
		"reminder_sent_total",
		metric.WithDescription("Reminders delivered and recorded"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	tickDuration, err := meter.Float64Histogram(
		"reminder_tick_duration_seconds",
		metric.WithDescription("Dispatch tick duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120,
		),
	)
	if err != nil {
		return nil, err
	}

	deliveryDuration, err := meter.Float64Histogram(
		"reminder_delivery_duration_seconds",
		metric.WithDescription("Time spent in the delivery adapter per reminder"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
		),
	)
	if err != nil {
		return nil, err
	}

	markSentAttempts, err := meter.Int64Histogram(
		"reminder_mark_sent_attempts",
		metric.WithDescription("Attempts needed to record a delivered reminder"),
		metric.WithUnit("{attempt}"),
		metric.WithExplicitBucketBoundaries(1, 2, 3),
	)
	if err != nil {
		return nil, err
	}

	return &DispatchMetrics{
		ticks:            ticks,
		pairsProcessed:   pairsProcessed,
		remindersSent:    remindersSent,
		tickDuration:     tickDuration,
		deliveryDuration: deliveryDuration,
		markSentAttempts: markSentAttempts,
	}, nil
}

func (m *DispatchMetrics) RecordTick(ctx context.Context, outcome string, duration time.Duration) {
	attrs := appendLoadtestLabels(ctx, []attribute.KeyValue{
		attribute.String("outcome", outcome),
	})
	m.ticks.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.tickDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

func (m *DispatchMetrics) RecordPairOutcome(ctx context.Context, outcome string) {
	m.pairsProcessed.Add(ctx, 1, metric.WithAttributes(
		appendLoadtestLabels(ctx, []attribute.KeyValue{attribute.String("outcome", outcome)})...,
	))
}

func (m *DispatchMetrics) RecordSent(ctx context.Context, count int) {
	if count == 0 {
		return
	}
	m.remindersSent.Add(ctx, int64(count), metric.WithAttributes(appendLoadtestLabels(ctx, nil)...))
}

func (m *DispatchMetrics) RecordDeliveryDuration(ctx context.Context, success bool, duration time.Duration) {
	m.deliveryDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.Bool("success", success),
	))
}

func (m *DispatchMetrics) RecordMarkSentAttempts(ctx context.Context, attempts int) {
	m.markSentAttempts.Record(ctx, int64(attempts))
}
