//go:build loadtest

package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/KasumiMercury/primind-event-reminder/internal/observability/logging"
)

// appendLoadtestLabels tags series with the run ID so load test runs can be
// separated from each other on dashboards.
func appendLoadtestLabels(ctx context.Context, attrs []attribute.KeyValue) []attribute.KeyValue {
	if runID := logging.RunIDFromContext(ctx); runID != "" {
		return append(attrs, attribute.String("loadtest.run_id", runID))
	}
	return attrs
}
