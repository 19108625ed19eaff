package mailer

import (
	"context"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

// LogSender writes reminders to the log instead of sending them. It is used
// when no relay is configured.
type LogSender struct {
	from string
	loc  *time.Location
}

func NewLogSender(from string, loc *time.Location) *LogSender {
	return &LogSender{from: from, loc: loc}
}

func (s *LogSender) Send(ctx context.Context, user domain.ReminderPreference, event domain.CandidateEvent) (domain.DeliveryResult, error) {
	msg, err := Compose(s.from, user, event, s.loc)
	if err != nil {
		return domain.DeliveryResult{Success: false, Reason: err.Error()}, nil
	}

	slog.InfoContext(ctx, "reminder email (log only)",
		slog.String("event_id", event.EventID),
		slog.String("user_id", user.UserID),
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)

	return domain.DeliveryResult{Success: true}, nil
}
