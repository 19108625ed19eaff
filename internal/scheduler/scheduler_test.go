package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/KasumiMercury/primind-event-reminder/internal/service/dispatch"
)

type recordingRunner struct {
	calls chan time.Time
	err   error
}

func (r *recordingRunner) Run(_ context.Context, now time.Time) (*dispatch.TickResult, error) {
	r.calls <- now
	if r.err != nil {
		return nil, r.err
	}
	return &dispatch.TickResult{Now: now}, nil
}

func waitCall(t *testing.T, calls <-chan time.Time) time.Time {
	t.Helper()
	select {
	case now := <-calls:
		return now
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for tick")
		return time.Time{}
	}
}

func TestSchedulerTicksImmediatelyThenEveryInterval(t *testing.T) {
	start := time.Date(2026, 2, 1, 16, 50, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)
	runner := &recordingRunner{calls: make(chan time.Time, 4)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		New(runner, clock, 5*time.Minute).Run(ctx)
		close(done)
	}()

	if got := waitCall(t, runner.calls); !got.Equal(start) {
		t.Errorf("expected first tick at %v, got %v", start, got)
	}

	waitCtx, waitCancel := context.WithTimeout(ctx, 2*time.Second)
	defer waitCancel()
	if err := clock.BlockUntilContext(waitCtx, 1); err != nil {
		t.Fatalf("ticker was not created: %v", err)
	}

	for i := 1; i <= 2; i++ {
		clock.Advance(5 * time.Minute)
		expected := start.Add(time.Duration(i) * 5 * time.Minute)
		if got := waitCall(t, runner.calls); !got.Equal(expected) {
			t.Errorf("tick %d: expected %v, got %v", i, expected, got)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}

func TestSchedulerSurvivesFailedTick(t *testing.T) {
	clock := clockwork.NewFakeClock()
	runner := &recordingRunner{calls: make(chan time.Time, 4), err: errors.New("database unavailable")}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go New(runner, clock, time.Minute).Run(ctx)

	waitCall(t, runner.calls)

	waitCtx, waitCancel := context.WithTimeout(ctx, 2*time.Second)
	defer waitCancel()
	if err := clock.BlockUntilContext(waitCtx, 1); err != nil {
		t.Fatalf("ticker was not created: %v", err)
	}

	clock.Advance(time.Minute)
	waitCall(t, runner.calls)
}
