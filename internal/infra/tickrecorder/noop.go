package tickrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.TickResultRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordTick(_ context.Context, _ domain.TickResultRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
