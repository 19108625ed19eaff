//go:build gcloud

package tickrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt  time.Time `bigquery:"recorded_at"`
	RunID       string    `bigquery:"run_id"`
	TickAt      time.Time `bigquery:"tick_at"`
	Candidates  int64     `bigquery:"candidates"`
	Due         int64     `bigquery:"due"`
	Sent        int64     `bigquery:"sent"`
	Resumed     int64     `bigquery:"resumed"`
	Skipped     int64     `bigquery:"skipped"`
	Failed      int64     `bigquery:"failed"`
	Unconfirmed int64     `bigquery:"unconfirmed"`
	Errored     int64     `bigquery:"errored"`
	DurationMs  int64     `bigquery:"duration_ms"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.TickResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "tick result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, tick result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, tick result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	inserter := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter()

	slog.InfoContext(ctx, "tick result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
	}, nil
}

func (r *bigQueryRecorder) RecordTick(ctx context.Context, record domain.TickResultRecord) error {
	row := &bigQueryRecord{
		RecordedAt:  time.Now(),
		RunID:       record.RunID,
		TickAt:      record.TickAt,
		Candidates:  int64(record.Candidates),
		Due:         int64(record.Due),
		Sent:        int64(record.Sent),
		Resumed:     int64(record.Resumed),
		Skipped:     int64(record.Skipped),
		Failed:      int64(record.Failed),
		Unconfirmed: int64(record.Unconfirmed),
		Errored:     int64(record.Errored),
		DurationMs:  record.Duration.Milliseconds(),
	}

	if err := r.inserter.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert tick result to BigQuery",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
