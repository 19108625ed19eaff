package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/tracing"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/reconcile"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/schedule"
)

type Service struct {
	users           domain.UserDirectory
	events          domain.EventDirectory
	ledger          domain.DispatchLedger
	delivery        domain.DeliveryAdapter
	reconciler      *reconcile.Reconciler
	cfg             Config
	dispatchMetrics *metrics.DispatchMetrics
	recorder        domain.TickResultRecorder
}

func NewService(
	users domain.UserDirectory,
	events domain.EventDirectory,
	ledger domain.DispatchLedger,
	delivery domain.DeliveryAdapter,
	cfg Config,
	dispatchMetrics *metrics.DispatchMetrics,
	recorder domain.TickResultRecorder,
) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Service{
		users:           users,
		events:          events,
		ledger:          ledger,
		delivery:        delivery,
		reconciler:      reconcile.NewReconciler(ledger, cfg.ResendDelay),
		cfg:             cfg,
		dispatchMetrics: dispatchMetrics,
		recorder:        recorder,
	}
}

// Tick runs one dispatch pass at now and returns how many reminders were
// delivered and recorded. A tick whose candidates cannot be loaded sends
// nothing and returns 0.
func (s *Service) Tick(ctx context.Context, now time.Time) int {
	result, err := s.Run(ctx, now)
	if err != nil {
		return 0
	}
	return result.Sent
}

// Run is Tick with the full per-pair report. The only error it returns is
// ErrCandidateLoad; every per-pair failure is folded into the result.
func (s *Service) Run(ctx context.Context, now time.Time) (*TickResult, error) {
	started := time.Now()

	runID := logging.RunIDFromContext(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = logging.WithRunID(ctx, runID)
	}

	ctx, span := tracing.StartTickSpan(ctx, runID, now)
	defer span.End()

	users, err := s.users.ListReminderSubscribers(ctx)
	if err != nil {
		return nil, s.abortTick(ctx, span, started, fmt.Errorf("%w: users: %w", ErrCandidateLoad, err))
	}

	from := domain.DateOf(now.In(s.cfg.Location)).AddDays(-1)
	events, err := s.events.ListUpcomingEvents(ctx, from)
	if err != nil {
		return nil, s.abortTick(ctx, span, started, fmt.Errorf("%w: events: %w", ErrCandidateLoad, err))
	}

	pairs := s.collectDuePairs(users, events, now)

	slog.DebugContext(ctx, "evaluated reminder candidates",
		slog.Int("user_count", len(users)),
		slog.Int("event_count", len(events)),
		slog.Int("due_count", len(pairs)),
		slog.Time("now", now),
	)

	result := &TickResult{
		RunID:  runID,
		Now:    now,
		Users:  len(users),
		Events: len(events),
		Due:    len(pairs),
		Pairs:  s.processAll(ctx, pairs, now),
	}
	for _, p := range result.Pairs {
		switch p.Outcome {
		case OutcomeSent:
			result.Sent++
		case OutcomeSkipped:
			result.Skipped++
		case OutcomeFailed:
			result.Failed++
		case OutcomeUnconfirmed:
			result.Unconfirmed++
		case OutcomeErrored:
			result.Errored++
		}
		if p.Resumed {
			result.Resumed++
		}
	}
	result.Duration = time.Since(started)

	tracing.RecordTickResult(span, result.Candidates(), result.Due, result.Sent, result.Skipped, result.Failed, nil)
	if s.dispatchMetrics != nil {
		s.dispatchMetrics.RecordTick(ctx, "completed", result.Duration)
		s.dispatchMetrics.RecordSent(ctx, result.Sent)
	}
	s.recordTick(ctx, result)

	slog.InfoContext(ctx, "dispatch tick completed",
		slog.Time("now", now),
		slog.Int("due_count", result.Due),
		slog.Int("sent_count", result.Sent),
		slog.Int("resumed_count", result.Resumed),
		slog.Int("skipped_count", result.Skipped),
		slog.Int("failed_count", result.Failed),
		slog.Int("unconfirmed_count", result.Unconfirmed),
		slog.Int("errored_count", result.Errored),
		slog.Duration("duration", result.Duration),
	)

	return result, nil
}

func (s *Service) abortTick(ctx context.Context, span trace.Span, started time.Time, err error) error {
	slog.ErrorContext(ctx, "dispatch tick aborted",
		slog.String("event", "reminder.tick.load_fail"),
		slog.String("error", err.Error()),
	)
	tracing.RecordTickResult(span, 0, 0, 0, 0, 0, err)
	if s.dispatchMetrics != nil {
		s.dispatchMetrics.RecordTick(ctx, "load_failed", time.Since(started))
	}
	return err
}

func (s *Service) collectDuePairs(users []domain.ReminderPreference, events []domain.CandidateEvent, now time.Time) []duePair {
	var pairs []duePair
	for _, event := range events {
		for _, user := range users {
			target := schedule.TargetTime(event.StartDate, event.StartTime, user.LeadDays, s.cfg.Location)
			if s.cfg.Window.IsDue(target, now) {
				pairs = append(pairs, duePair{user: user, event: event, target: target})
			}
		}
	}
	return pairs
}

// processAll handles every pair independently. Results are written by index
// so workers never share a counter.
func (s *Service) processAll(ctx context.Context, pairs []duePair, now time.Time) []PairResult {
	results := make([]PairResult, len(pairs))

	if s.cfg.Workers <= 1 || len(pairs) <= 1 {
		for i, p := range pairs {
			results[i] = s.processPairSafely(ctx, p, now)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(s.cfg.Workers)
	for i, p := range pairs {
		g.Go(func() error {
			results[i] = s.processPairSafely(ctx, p, now)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *Service) processPairSafely(ctx context.Context, p duePair, now time.Time) (result PairResult) {
	ctx, span := tracing.StartPairSpan(ctx, p.event.EventID, p.user.UserID, p.target)
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic while dispatching reminder",
				slog.String("event_id", p.event.EventID),
				slog.String("user_id", p.user.UserID),
				slog.String("error", fmt.Sprint(r)),
				slog.String("stack", string(debug.Stack())),
			)
			result = PairResult{
				EventID:    p.event.EventID,
				UserID:     p.user.UserID,
				TargetTime: p.target,
				Outcome:    OutcomeErrored,
				Error:      fmt.Sprintf("panic: %v", r),
			}
		}

		var spanErr error
		if result.Outcome == OutcomeErrored {
			spanErr = errors.New(result.Error)
		}
		tracing.RecordPairOutcome(span, result.Outcome.String(), spanErr)
		if s.dispatchMetrics != nil {
			s.dispatchMetrics.RecordPairOutcome(ctx, result.Outcome.String())
		}
	}()

	return s.processPair(ctx, p, now)
}

func (s *Service) processPair(ctx context.Context, p duePair, now time.Time) PairResult {
	eventID, userID := p.event.EventID, p.user.UserID
	result := PairResult{EventID: eventID, UserID: userID, TargetTime: p.target}

	created, err := s.ledger.Create(ctx, eventID, userID, now)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create dispatch record",
			slog.String("event_id", eventID),
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		result.Outcome = OutcomeErrored
		result.Error = err.Error()
		return result
	}

	record := created.Record
	if !created.IsCreated() {
		resumed, decision, err := s.reconciler.Reconcile(ctx, created.Record, eventID, userID, now)
		if err != nil {
			slog.ErrorContext(ctx, "failed to reconcile existing dispatch record",
				slog.String("event_id", eventID),
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
			result.Outcome = OutcomeErrored
			result.Error = err.Error()
			return result
		}
		if decision.IsSkip() {
			slog.DebugContext(ctx, "skipping reminder",
				slog.String("event_id", eventID),
				slog.String("user_id", userID),
				slog.String("reason", decision.String()),
			)
			result.Outcome = OutcomeSkipped
			result.SkipReason = decision.String()
			return result
		}
		record = resumed
		result.Resumed = true
	}

	if record == nil {
		result.Outcome = OutcomeErrored
		result.Error = "ledger returned no dispatch record"
		return result
	}

	delivery := s.deliver(ctx, p.user, p.event)

	// The email has either gone out or definitely not; finish bookkeeping even
	// if the tick is being cancelled.
	writeCtx := context.WithoutCancel(ctx)

	if !delivery.Success {
		slog.WarnContext(ctx, "reminder delivery failed",
			slog.String("event_id", eventID),
			slog.String("user_id", userID),
			slog.String("reason", delivery.Reason),
		)
		if err := s.ledger.Delete(writeCtx, record.ID); err != nil {
			// The record stays behind and is resumed once it is older than the resend delay.
			slog.WarnContext(ctx, "failed to release dispatch record after failed delivery",
				slog.String("record_id", record.ID),
				slog.String("error", err.Error()),
			)
		}
		result.Outcome = OutcomeFailed
		result.Error = delivery.Reason
		return result
	}

	attempts, err := s.cfg.MarkSentRetry.Do(writeCtx, func(ctx context.Context) error {
		return s.ledger.MarkSent(ctx, record.ID, now)
	})
	if s.dispatchMetrics != nil {
		s.dispatchMetrics.RecordMarkSentAttempts(ctx, attempts)
	}
	if err != nil {
		slog.ErrorContext(ctx, "reminder delivered but not recorded",
			slog.String("event", "reminder.mark_sent.fail"),
			slog.String("record_id", record.ID),
			slog.String("event_id", eventID),
			slog.String("user_id", userID),
			slog.Int("attempts", attempts),
			slog.String("error", err.Error()),
		)
		result.Outcome = OutcomeUnconfirmed
		result.Error = err.Error()
		return result
	}

	slog.InfoContext(ctx, "reminder sent",
		slog.String("event_id", eventID),
		slog.String("user_id", userID),
		slog.Time("target_time", p.target),
		slog.Bool("resumed", result.Resumed),
	)
	result.Outcome = OutcomeSent
	return result
}

// deliver calls the adapter under the delivery timeout. Errors and panics
// count as an ordinary failed send.
func (s *Service) deliver(ctx context.Context, user domain.ReminderPreference, event domain.CandidateEvent) (result domain.DeliveryResult) {
	if s.cfg.DeliveryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.DeliveryTimeout)
		defer cancel()
	}

	ctx, span := tracing.StartDeliverySpan(ctx, fmt.Sprintf("%T", s.delivery))
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "delivery adapter panicked",
				slog.String("event_id", event.EventID),
				slog.String("user_id", user.UserID),
				slog.String("error", fmt.Sprint(r)),
			)
			result = domain.DeliveryResult{Success: false, Reason: fmt.Sprintf("delivery panicked: %v", r)}
		}
		if s.dispatchMetrics != nil {
			s.dispatchMetrics.RecordDeliveryDuration(ctx, result.Success, time.Since(started))
		}
		span.End()
	}()

	res, err := s.delivery.Send(ctx, user, event)
	if err != nil {
		slog.ErrorContext(ctx, "delivery adapter error",
			slog.String("event_id", event.EventID),
			slog.String("user_id", user.UserID),
			slog.String("error", err.Error()),
		)
		return domain.DeliveryResult{Success: false, Reason: err.Error()}
	}
	if !res.Success && res.Reason == "" {
		res.Reason = "delivery failed"
	}
	return res
}

func (s *Service) recordTick(ctx context.Context, result *TickResult) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordTick(ctx, result.toRecord()); err != nil {
		slog.WarnContext(ctx, "failed to record tick result",
			slog.String("error", err.Error()),
		)
	}
}
