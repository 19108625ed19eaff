package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=dispatch_ledger.go -destination=dispatch_ledger_mock.go -package=domain

type CreateOutcome int

const (
	CreateOutcomeCreated CreateOutcome = iota + 1
	CreateOutcomeAlreadyExists
)

func (o CreateOutcome) String() string {
	switch o {
	case CreateOutcomeCreated:
		return "created"
	case CreateOutcomeAlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}

// CreateResult is either a freshly created record or the record that already
// holds the (event, user) slot. Record may be nil for AlreadyExists when the
// adapter could not load the existing row.
type CreateResult struct {
	Outcome CreateOutcome
	Record  *DispatchRecord
}

func Created(record *DispatchRecord) CreateResult {
	return CreateResult{Outcome: CreateOutcomeCreated, Record: record}
}

func AlreadyExists(existing *DispatchRecord) CreateResult {
	return CreateResult{Outcome: CreateOutcomeAlreadyExists, Record: existing}
}

func (r CreateResult) IsCreated() bool {
	return r.Outcome == CreateOutcomeCreated
}

type DispatchLedger interface {
	Create(ctx context.Context, eventID, userID string, queuedAt time.Time) (CreateResult, error)
	Find(ctx context.Context, eventID, userID string) (*DispatchRecord, error)
	MarkSent(ctx context.Context, id string, sentAt time.Time) error
	ResetQueued(ctx context.Context, id string, previousQueuedAt, queuedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
