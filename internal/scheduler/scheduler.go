package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/KasumiMercury/primind-event-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/dispatch"
)

type TickRunner interface {
	Run(ctx context.Context, now time.Time) (*dispatch.TickResult, error)
}

// Scheduler runs a tick immediately and then every interval. Ticks never
// overlap within one process; a slow tick delays the next one.
type Scheduler struct {
	runner   TickRunner
	clock    clockwork.Clock
	interval time.Duration
}

func New(runner TickRunner, clock clockwork.Clock, interval time.Duration) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{
		runner:   runner,
		clock:    clock,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ctx = logging.WithModule(ctx, logging.Module("scheduler"))

	slog.InfoContext(ctx, "scheduler started",
		slog.Duration("interval", s.interval),
	)

	s.tick(ctx)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "scheduler stopped")
			return
		case <-ticker.Chan():
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	if _, err := s.runner.Run(ctx, s.clock.Now()); err != nil {
		slog.ErrorContext(ctx, "scheduled tick failed",
			slog.String("error", err.Error()),
		)
	}
}
