package domain

import "context"

//go:generate mockgen -source=directory.go -destination=directory_mock.go -package=domain

type UserDirectory interface {
	ListReminderSubscribers(ctx context.Context) ([]ReminderPreference, error)
}

type EventDirectory interface {
	// ListUpcomingEvents returns events starting on or after from.
	ListUpcomingEvents(ctx context.Context, from Date) ([]CandidateEvent, error)
}
