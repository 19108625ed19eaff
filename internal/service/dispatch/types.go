package dispatch

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/retry"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/schedule"
)

type Config struct {
	Window          schedule.Window
	ResendDelay     time.Duration
	DeliveryTimeout time.Duration
	MarkSentRetry   retry.Policy
	Workers         int
	Location        *time.Location
}

type Outcome int

const (
	OutcomeSent Outcome = iota + 1
	OutcomeSkipped
	OutcomeFailed
	OutcomeUnconfirmed
	OutcomeErrored
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	case OutcomeUnconfirmed:
		return "unconfirmed"
	case OutcomeErrored:
		return "errored"
	default:
		return "unknown"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	for _, candidate := range []Outcome{OutcomeSent, OutcomeSkipped, OutcomeFailed, OutcomeUnconfirmed, OutcomeErrored} {
		if candidate.String() == string(text) {
			*o = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}

type PairResult struct {
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id"`
	TargetTime time.Time `json:"target_time"`
	Outcome    Outcome   `json:"outcome"`
	Resumed    bool      `json:"resumed,omitempty"`
	SkipReason string    `json:"skip_reason,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// TickResult summarizes one tick. Sent counts reminders that were both
// delivered and recorded.
type TickResult struct {
	RunID       string        `json:"run_id"`
	Now         time.Time     `json:"now"`
	Users       int           `json:"users"`
	Events      int           `json:"events"`
	Due         int           `json:"due"`
	Sent        int           `json:"sent"`
	Resumed     int           `json:"resumed"`
	Skipped     int           `json:"skipped"`
	Failed      int           `json:"failed"`
	Unconfirmed int           `json:"unconfirmed"`
	Errored     int           `json:"errored"`
	Duration    time.Duration `json:"duration_ns"`
	Pairs       []PairResult  `json:"pairs"`
}

func (r *TickResult) Candidates() int {
	return r.Users * r.Events
}

func (r *TickResult) toRecord() domain.TickResultRecord {
	return domain.TickResultRecord{
		RunID:       r.RunID,
		TickAt:      r.Now,
		Candidates:  r.Candidates(),
		Due:         r.Due,
		Sent:        r.Sent,
		Resumed:     r.Resumed,
		Skipped:     r.Skipped,
		Failed:      r.Failed,
		Unconfirmed: r.Unconfirmed,
		Errored:     r.Errored,
		Duration:    r.Duration,
	}
}

type duePair struct {
	user   domain.ReminderPreference
	event  domain.CandidateEvent
	target time.Time
}
