package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

type Decision int

const (
	DecisionResume Decision = iota + 1
	DecisionSkipDelivered
	DecisionSkipInFlight
	DecisionSkipMissing
)

func (d Decision) String() string {
	switch d {
	case DecisionResume:
		return "resume"
	case DecisionSkipDelivered:
		return "skip_delivered"
	case DecisionSkipInFlight:
		return "skip_in_flight"
	case DecisionSkipMissing:
		return "skip_missing"
	default:
		return "unknown"
	}
}

func (d Decision) IsSkip() bool {
	return d != DecisionResume
}

// Decide classifies an existing record for a pair that is due again.
func Decide(existing *domain.DispatchRecord, now time.Time, resendDelay time.Duration) Decision {
	if existing == nil {
		return DecisionSkipMissing
	}
	if existing.IsSent() {
		return DecisionSkipDelivered
	}
	if existing.Age(now) < resendDelay {
		return DecisionSkipInFlight
	}
	return DecisionResume
}

type Reconciler struct {
	ledger      domain.DispatchLedger
	resendDelay time.Duration
}

func NewReconciler(ledger domain.DispatchLedger, resendDelay time.Duration) *Reconciler {
	return &Reconciler{
		ledger:      ledger,
		resendDelay: resendDelay,
	}
}

// Reconcile resolves a create collision. On DecisionResume the returned
// record has QueuedAt reset to now and belongs to the caller.
func (r *Reconciler) Reconcile(
	ctx context.Context,
	existing *domain.DispatchRecord,
	eventID, userID string,
	now time.Time,
) (*domain.DispatchRecord, Decision, error) {
	if existing == nil {
		found, err := r.ledger.Find(ctx, eventID, userID)
		if err != nil {
			if errors.Is(err, domain.ErrDispatchRecordNotFound) {
				return nil, DecisionSkipMissing, nil
			}
			return nil, 0, fmt.Errorf("failed to load existing dispatch record: %w", err)
		}
		existing = found
	}

	decision := Decide(existing, now, r.resendDelay)
	if decision != DecisionResume {
		return existing, decision, nil
	}

	if err := r.ledger.ResetQueued(ctx, existing.ID, existing.QueuedAt, now); err != nil {
		if errors.Is(err, domain.ErrDispatchRecordConflict) {
			slog.DebugContext(ctx, "stale dispatch record taken over by another attempt",
				slog.String("record_id", existing.ID),
				slog.String("event_id", eventID),
				slog.String("user_id", userID),
			)
			return existing, DecisionSkipInFlight, nil
		}
		return nil, 0, fmt.Errorf("failed to reset stale dispatch record: %w", err)
	}

	slog.InfoContext(ctx, "resuming abandoned reminder",
		slog.String("record_id", existing.ID),
		slog.String("event_id", eventID),
		slog.String("user_id", userID),
		slog.Time("previous_queued_at", existing.QueuedAt),
		slog.Duration("age", existing.Age(now)),
	)

	resumed := *existing
	resumed.QueuedAt = now
	return &resumed, DecisionResume, nil
}
