package ledger

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLedgerContract(t *testing.T) {
	runLedgerContract(t, NewMemoryLedger())
}

func TestMemoryLedgerReturnsCopies(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger()
	queuedAt := time.Date(2026, 2, 1, 17, 0, 0, 0, time.UTC)

	res, err := l.Create(ctx, "event-1", "user-1", queuedAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res.Record.QueuedAt = queuedAt.Add(time.Hour)

	found, err := l.Find(ctx, "event-1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found.QueuedAt.Equal(queuedAt) {
		t.Errorf("stored record was mutated through returned copy: %v", found.QueuedAt)
	}

	if got := len(l.Records()); got != 1 {
		t.Errorf("expected 1 record, got %d", got)
	}
}
