package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

// runLedgerContract checks behaviour every DispatchLedger backend must share.
// Each case uses fresh pair keys so backends can share one store.
func runLedgerContract(t *testing.T, ledger domain.DispatchLedger) {
	t.Helper()
	ctx := context.Background()
	queuedAt := time.Date(2026, 2, 1, 17, 0, 0, 0, time.UTC)

	newPair := func() (string, string) {
		return "event-" + uuid.NewString(), "user-" + uuid.NewString()
	}

	t.Run("create then create again reports existing record", func(t *testing.T) {
		eventID, userID := newPair()

		first, err := ledger.Create(ctx, eventID, userID, queuedAt)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !first.IsCreated() {
			t.Fatalf("expected created, got %s", first.Outcome)
		}
		if first.Record == nil || first.Record.ID == "" {
			t.Fatal("expected created record with id")
		}
		if !first.Record.QueuedAt.Equal(queuedAt) {
			t.Errorf("expected queuedAt %v, got %v", queuedAt, first.Record.QueuedAt)
		}

		second, err := ledger.Create(ctx, eventID, userID, queuedAt.Add(time.Minute))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.Outcome != domain.CreateOutcomeAlreadyExists {
			t.Fatalf("expected already exists, got %s", second.Outcome)
		}
		if second.Record == nil || second.Record.ID != first.Record.ID {
			t.Errorf("expected existing record %s, got %+v", first.Record.ID, second.Record)
		}
		if !second.Record.QueuedAt.Equal(queuedAt) {
			t.Errorf("existing record queuedAt changed: %v", second.Record.QueuedAt)
		}
	})

	t.Run("colon in ids does not merge pairs", func(t *testing.T) {
		suffix := uuid.NewString()
		firstEvent, firstUser := "event:"+suffix+":a", "user"
		secondEvent, secondUser := "event:"+suffix, "a:user"

		first, err := ledger.Create(ctx, firstEvent, firstUser, queuedAt)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !first.IsCreated() {
			t.Fatalf("expected created, got %s", first.Outcome)
		}

		second, err := ledger.Create(ctx, secondEvent, secondUser, queuedAt)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !second.IsCreated() {
			t.Fatalf("expected distinct pair to be created, got %s", second.Outcome)
		}
		if second.Record.ID == first.Record.ID {
			t.Errorf("expected distinct records, both have id %s", first.Record.ID)
		}

		found, err := ledger.Find(ctx, secondEvent, secondUser)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found.EventID != secondEvent || found.UserID != secondUser {
			t.Errorf("expected %s/%s, got %s/%s", secondEvent, secondUser, found.EventID, found.UserID)
		}
	})

	t.Run("empty pair key is rejected", func(t *testing.T) {
		if _, err := ledger.Create(ctx, "", "user", queuedAt); !errors.Is(err, ErrEmptyPairKey) {
			t.Errorf("expected ErrEmptyPairKey, got %v", err)
		}
	})

	t.Run("find missing pair", func(t *testing.T) {
		eventID, userID := newPair()

		_, err := ledger.Find(ctx, eventID, userID)
		if !errors.Is(err, domain.ErrDispatchRecordNotFound) {
			t.Errorf("expected ErrDispatchRecordNotFound, got %v", err)
		}
	})

	t.Run("mark sent keeps first timestamp", func(t *testing.T) {
		eventID, userID := newPair()
		res, err := ledger.Create(ctx, eventID, userID, queuedAt)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		firstSent := queuedAt.Add(2 * time.Second)
		if err := ledger.MarkSent(ctx, res.Record.ID, firstSent); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := ledger.MarkSent(ctx, res.Record.ID, firstSent.Add(time.Hour)); err != nil {
			t.Fatalf("second mark sent should be a no-op, got %v", err)
		}

		found, err := ledger.Find(ctx, eventID, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !found.IsSent() {
			t.Fatal("expected record to be sent")
		}
		if !found.SentAt.Equal(firstSent) {
			t.Errorf("expected sentAt %v, got %v", firstSent, *found.SentAt)
		}
	})

	t.Run("mark sent on unknown id", func(t *testing.T) {
		err := ledger.MarkSent(ctx, uuid.NewString(), queuedAt)
		if !errors.Is(err, domain.ErrDispatchRecordNotFound) {
			t.Errorf("expected ErrDispatchRecordNotFound, got %v", err)
		}
	})

	t.Run("reset queued compares previous value", func(t *testing.T) {
		eventID, userID := newPair()
		res, err := ledger.Create(ctx, eventID, userID, queuedAt)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		later := queuedAt.Add(10 * time.Minute)
		if err := ledger.ResetQueued(ctx, res.Record.ID, queuedAt, later); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// A second worker holding the stale value must lose.
		err = ledger.ResetQueued(ctx, res.Record.ID, queuedAt, later.Add(time.Minute))
		if !errors.Is(err, domain.ErrDispatchRecordConflict) {
			t.Errorf("expected ErrDispatchRecordConflict, got %v", err)
		}

		found, err := ledger.Find(ctx, eventID, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !found.QueuedAt.Equal(later) {
			t.Errorf("expected queuedAt %v, got %v", later, found.QueuedAt)
		}
	})

	t.Run("reset queued refuses sent record", func(t *testing.T) {
		eventID, userID := newPair()
		res, err := ledger.Create(ctx, eventID, userID, queuedAt)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := ledger.MarkSent(ctx, res.Record.ID, queuedAt.Add(time.Second)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		err = ledger.ResetQueued(ctx, res.Record.ID, queuedAt, queuedAt.Add(time.Hour))
		if !errors.Is(err, domain.ErrDispatchRecordConflict) {
			t.Errorf("expected ErrDispatchRecordConflict, got %v", err)
		}
	})

	t.Run("reset queued on unknown id", func(t *testing.T) {
		err := ledger.ResetQueued(ctx, uuid.NewString(), queuedAt, queuedAt.Add(time.Hour))
		if !errors.Is(err, domain.ErrDispatchRecordNotFound) {
			t.Errorf("expected ErrDispatchRecordNotFound, got %v", err)
		}
	})

	t.Run("delete unsent record frees the pair", func(t *testing.T) {
		eventID, userID := newPair()
		res, err := ledger.Create(ctx, eventID, userID, queuedAt)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := ledger.Delete(ctx, res.Record.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := ledger.Find(ctx, eventID, userID); !errors.Is(err, domain.ErrDispatchRecordNotFound) {
			t.Errorf("expected record to be gone, got %v", err)
		}

		again, err := ledger.Create(ctx, eventID, userID, queuedAt)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !again.IsCreated() {
			t.Errorf("expected pair to be claimable after delete, got %s", again.Outcome)
		}
	})

	t.Run("delete refuses sent record", func(t *testing.T) {
		eventID, userID := newPair()
		res, err := ledger.Create(ctx, eventID, userID, queuedAt)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := ledger.MarkSent(ctx, res.Record.ID, queuedAt); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := ledger.Delete(ctx, res.Record.ID); !errors.Is(err, domain.ErrDispatchRecordSent) {
			t.Errorf("expected ErrDispatchRecordSent, got %v", err)
		}
		if _, err := ledger.Find(ctx, eventID, userID); err != nil {
			t.Errorf("sent record must survive delete, got %v", err)
		}
	})

	t.Run("delete unknown id is a no-op", func(t *testing.T) {
		if err := ledger.Delete(ctx, uuid.NewString()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("concurrent creates elect one winner", func(t *testing.T) {
		eventID, userID := newPair()
		const workers = 16

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			created int
			ids     = make(map[string]struct{})
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := ledger.Create(ctx, eventID, userID, queuedAt)
				if err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
				mu.Lock()
				defer mu.Unlock()
				if res.IsCreated() {
					created++
				}
				if res.Record != nil {
					ids[res.Record.ID] = struct{}{}
				}
			}()
		}
		wg.Wait()

		if created != 1 {
			t.Errorf("expected exactly one created outcome, got %d", created)
		}
		if len(ids) != 1 {
			t.Errorf("expected every caller to see the same record, got %d ids", len(ids))
		}
	})
}
