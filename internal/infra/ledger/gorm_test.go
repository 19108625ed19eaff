package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/testutil"
)

func TestGormLedgerContract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	db, cleanup := testutil.SetupPostgresContainer(ctx, t)
	defer cleanup()

	l := NewGormLedger(db)
	if err := l.AutoMigrate(ctx); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	runLedgerContract(t, l)
}

func TestGormLedgerTruncatesToMicroseconds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	db, cleanup := testutil.SetupPostgresContainer(ctx, t)
	defer cleanup()

	l := NewGormLedger(db)
	if err := l.AutoMigrate(ctx); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	queuedAt := time.Date(2026, 2, 1, 17, 0, 0, 123456789, time.UTC)
	res, err := l.Create(ctx, "event-us", "user-us", queuedAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := queuedAt.Truncate(time.Microsecond)
	if !res.Record.QueuedAt.Equal(expected) {
		t.Errorf("expected queuedAt %v, got %v", expected, res.Record.QueuedAt)
	}

	// The caller only ever sees the stored precision, so a compare-and-set
	// with the returned value must succeed.
	if err := l.ResetQueued(ctx, res.Record.ID, res.Record.QueuedAt, queuedAt.Add(time.Minute)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
