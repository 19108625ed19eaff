package domain

import "time"

// ReminderPreference is the part of a member profile the dispatcher reads.
type ReminderPreference struct {
	UserID   string
	Email    string
	Name     string
	LeadDays int
}

type CandidateEvent struct {
	EventID   string
	Title     string
	StartDate Date
	StartTime TimeOfDay
	Location  string
}

// DispatchRecord marks a queued or sent reminder for one (event, user) pair.
type DispatchRecord struct {
	ID       string
	EventID  string
	UserID   string
	QueuedAt time.Time
	SentAt   *time.Time
}

func (r *DispatchRecord) IsSent() bool {
	return r.SentAt != nil
}

// Age returns how long the record has been queued as of now.
func (r *DispatchRecord) Age(now time.Time) time.Duration {
	return now.Sub(r.QueuedAt)
}
