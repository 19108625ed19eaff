package domain

import (
	"context"
	"time"
)

type TickResultRecord struct {
	RunID       string
	TickAt      time.Time
	Candidates  int
	Due         int
	Sent        int
	Resumed     int
	Skipped     int
	Failed      int
	Unconfirmed int
	Errored     int
	Duration    time.Duration
}

type TickResultRecorder interface {
	RecordTick(ctx context.Context, record TickResultRecord) error
	Flush(ctx context.Context) error
	Close() error
}
