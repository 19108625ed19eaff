package mailer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

func TestCompose(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	event := domain.CandidateEvent{
		EventID:   "e1",
		Title:     "Annual meeting",
		StartDate: domain.NewDate(2026, time.February, 8),
		StartTime: domain.TimeOfDay{Hour: 18},
		Location:  "Club house",
	}

	tests := []struct {
		name     string
		user     domain.ReminderPreference
		event    domain.CandidateEvent
		loc      *time.Location
		subject  string
		contains []string
		absent   []string
	}{
		{
			name:    "full details",
			user:    domain.ReminderPreference{UserID: "u1", Email: "anna@example.com", Name: "Anna", LeadDays: 7},
			event:   event,
			loc:     berlin,
			subject: "Reminder: Annual meeting on 2026-02-08",
			contains: []string{
				"Hello Anna,",
				"Date:     2026-02-08",
				"Time:     18:00 (CET)",
				"Location: Club house",
				"in 7 days",
			},
		},
		{
			name:     "same day without location",
			user:     domain.ReminderPreference{UserID: "u2", Email: "ben@example.com", LeadDays: 0},
			event:    domain.CandidateEvent{EventID: "e2", Title: "Training", StartDate: domain.NewDate(2026, time.July, 1), StartTime: domain.TimeOfDay{Hour: 9, Minute: 30}},
			loc:      berlin,
			subject:  "Reminder: Training on 2026-07-01",
			contains: []string{"Hello,", "09:30 (CEST)", "takes place today"},
			absent:   []string{"Location:"},
		},
		{
			name:     "nil location falls back to UTC",
			user:     domain.ReminderPreference{UserID: "u3", Email: "cara@example.com", LeadDays: 1},
			event:    event,
			subject:  "Reminder: Annual meeting on 2026-02-08",
			contains: []string{"18:00 (UTC)", "tomorrow"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Compose("reminders@example.com", tt.user, tt.event, tt.loc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if msg.Subject != tt.subject {
				t.Errorf("expected subject %q, got %q", tt.subject, msg.Subject)
			}
			if msg.To != tt.user.Email {
				t.Errorf("expected recipient %q, got %q", tt.user.Email, msg.To)
			}
			for _, s := range tt.contains {
				if !strings.Contains(msg.Body, s) {
					t.Errorf("expected body to contain %q, got:\n%s", s, msg.Body)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(msg.Body, s) {
					t.Errorf("expected body not to contain %q, got:\n%s", s, msg.Body)
				}
			}
		})
	}
}

func TestComposeRequiresRecipient(t *testing.T) {
	_, err := Compose("from@example.com", domain.ReminderPreference{UserID: "u"}, domain.CandidateEvent{}, nil)
	if !errors.Is(err, ErrRecipientMissing) {
		t.Errorf("expected ErrRecipientMissing, got %v", err)
	}
}
