package domain

import "context"

//go:generate mockgen -source=delivery.go -destination=delivery_mock.go -package=domain

type DeliveryResult struct {
	Success bool
	Reason  string
}

// DeliveryAdapter sends one reminder. Ordinary send failures are reported
// through DeliveryResult; an error means the adapter itself is unusable.
type DeliveryAdapter interface {
	Send(ctx context.Context, user ReminderPreference, event CandidateEvent) (DeliveryResult, error)
}
