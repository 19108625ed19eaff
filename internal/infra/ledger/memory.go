package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

type pairKey struct {
	eventID string
	userID  string
}

// MemoryLedger keeps dispatch records in process memory. It is meant for
// single-replica local runs and tests.
type MemoryLedger struct {
	mu     sync.RWMutex
	byPair map[pairKey]*domain.DispatchRecord
	byID   map[string]pairKey
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		byPair: make(map[pairKey]*domain.DispatchRecord),
		byID:   make(map[string]pairKey),
	}
}

func (l *MemoryLedger) Create(_ context.Context, eventID, userID string, queuedAt time.Time) (domain.CreateResult, error) {
	if eventID == "" || userID == "" {
		return domain.CreateResult{}, ErrEmptyPairKey
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := pairKey{eventID: eventID, userID: userID}
	if existing, ok := l.byPair[key]; ok {
		return domain.AlreadyExists(cloneRecord(existing)), nil
	}

	record := &domain.DispatchRecord{
		ID:       uuid.NewString(),
		EventID:  eventID,
		UserID:   userID,
		QueuedAt: queuedAt.UTC(),
	}
	l.byPair[key] = record
	l.byID[record.ID] = key

	return domain.Created(cloneRecord(record)), nil
}

func (l *MemoryLedger) Find(_ context.Context, eventID, userID string) (*domain.DispatchRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	record, ok := l.byPair[pairKey{eventID: eventID, userID: userID}]
	if !ok {
		return nil, domain.ErrDispatchRecordNotFound
	}
	return cloneRecord(record), nil
}

func (l *MemoryLedger) MarkSent(_ context.Context, id string, sentAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.lookup(id)
	if !ok {
		return domain.ErrDispatchRecordNotFound
	}
	if record.SentAt == nil {
		t := sentAt.UTC()
		record.SentAt = &t
	}
	return nil
}

func (l *MemoryLedger) ResetQueued(_ context.Context, id string, previousQueuedAt, queuedAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.lookup(id)
	if !ok {
		return domain.ErrDispatchRecordNotFound
	}
	if record.SentAt != nil || !record.QueuedAt.Equal(previousQueuedAt) {
		return domain.ErrDispatchRecordConflict
	}
	record.QueuedAt = queuedAt.UTC()
	return nil
}

func (l *MemoryLedger) Delete(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.lookup(id)
	if !ok {
		return nil
	}
	if record.SentAt != nil {
		return domain.ErrDispatchRecordSent
	}
	delete(l.byPair, l.byID[id])
	delete(l.byID, id)
	return nil
}

// Records returns a snapshot of all records.
func (l *MemoryLedger) Records() []domain.DispatchRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	records := make([]domain.DispatchRecord, 0, len(l.byPair))
	for _, r := range l.byPair {
		records = append(records, *cloneRecord(r))
	}
	return records
}

func (l *MemoryLedger) lookup(id string) (*domain.DispatchRecord, bool) {
	key, ok := l.byID[id]
	if !ok {
		return nil, false
	}
	record, ok := l.byPair[key]
	return record, ok
}

func cloneRecord(r *domain.DispatchRecord) *domain.DispatchRecord {
	c := *r
	if r.SentAt != nil {
		t := *r.SentAt
		c.SentAt = &t
	}
	return &c
}
