//go:build !gcloud

package tickrecorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

const measurement = "reminder_tick"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.TickResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "tick result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, tick result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "tick result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

// RecordTick never fails the tick; write errors are only logged.
func (r *influxDBRecorder) RecordTick(ctx context.Context, record domain.TickResultRecord) error {
	if err := r.writeAPI.WritePoint(ctx, tickPoint(record)); err != nil {
		slog.WarnContext(ctx, "failed to write tick result to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
			slog.Time("tick_at", record.TickAt),
		)
	}

	return nil
}

func tickPoint(record domain.TickResultRecord) *write.Point {
	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	return influxdb2.NewPoint(
		measurement,
		map[string]string{
			"run_id": runID,
		},
		map[string]any{
			"candidates":  record.Candidates,
			"due":         record.Due,
			"sent":        record.Sent,
			"resumed":     record.Resumed,
			"skipped":     record.Skipped,
			"failed":      record.Failed,
			"unconfirmed": record.Unconfirmed,
			"errored":     record.Errored,
			"duration_ms": record.Duration.Milliseconds(),
		},
		record.TickAt.UTC().Truncate(time.Millisecond),
	)
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
