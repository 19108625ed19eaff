package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/testutil"
)

func TestRedisPairKey(t *testing.T) {
	tests := []struct {
		name   string
		first  [2]string
		second [2]string
	}{
		{name: "colon moved between ids", first: [2]string{"a:b", "c"}, second: [2]string{"a", "b:c"}},
		{name: "trailing colon", first: [2]string{"a:", "b"}, second: [2]string{"a", ":b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			firstKey := redisPairKey(tt.first[0], tt.first[1])
			secondKey := redisPairKey(tt.second[0], tt.second[1])
			if firstKey == secondKey {
				t.Errorf("expected distinct keys, both are %q", firstKey)
			}
		})
	}
}

func TestRedisLedgerContract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	runLedgerContract(t, NewRedisLedger(client))
}

func TestRedisLedgerCorruptRecord(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	l := NewRedisLedger(client)

	tests := []struct {
		name   string
		fields map[string]any
	}{
		{
			name:   "unparseable queued_at",
			fields: map[string]any{"id": "r-1", "event_id": "e", "user_id": "u", "queued_at": "yesterday"},
		},
		{
			name:   "missing id",
			fields: map[string]any{"event_id": "e", "user_id": "u", "queued_at": "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := client.Del(ctx, redisPairKey("e", "u")).Err(); err != nil {
				t.Fatalf("failed to reset key: %v", err)
			}
			if err := client.HSet(ctx, redisPairKey("e", "u"), tt.fields).Err(); err != nil {
				t.Fatalf("failed to set up test data: %v", err)
			}

			_, err := l.Find(ctx, "e", "u")
			if !errors.Is(err, ErrInvalidRecordData) {
				t.Errorf("expected ErrInvalidRecordData, got %v", err)
			}
		})
	}
}

func TestRedisLedgerKeepsNanoseconds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	l := NewRedisLedger(client)
	queuedAt := time.Date(2026, 2, 1, 17, 0, 0, 123456789, time.UTC)

	res, err := l.Create(ctx, "event-ns", "user-ns", queuedAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The compare-and-set must match the exact value handed out by Create.
	if err := l.ResetQueued(ctx, res.Record.ID, res.Record.QueuedAt, queuedAt.Add(time.Minute)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := l.Find(ctx, "event-ns", "user-ns")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.SentAt != nil {
		t.Errorf("expected unsent record")
	}
	if !found.QueuedAt.Equal(queuedAt.Add(time.Minute)) {
		t.Errorf("expected queuedAt %v, got %v", queuedAt.Add(time.Minute), found.QueuedAt)
	}
}
