package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

const (
	pairKeyPrefix = "reminder:dispatch:pair:"
	idKeyPrefix   = "reminder:dispatch:id:"

	fieldID       = "id"
	fieldEventID  = "event_id"
	fieldUserID   = "user_id"
	fieldQueuedAt = "queued_at"
	fieldSentAt   = "sent_at"
)

// KEYS[1]=pair key, KEYS[2]=id key; ARGV=id, event, user, queued_at
var createScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
  return 0
end
redis.call('HSET', KEYS[1], 'id', ARGV[1], 'event_id', ARGV[2], 'user_id', ARGV[3], 'queued_at', ARGV[4])
redis.call('SET', KEYS[2], KEYS[1])
return 1
`)

// KEYS[1]=id key; ARGV=sent_at. First write wins.
var markSentScript = redis.NewScript(`
local pair = redis.call('GET', KEYS[1])
if not pair then
  return 0
end
redis.call('HSETNX', pair, 'sent_at', ARGV[1])
return 1
`)

// KEYS[1]=id key; ARGV=previous queued_at, new queued_at
var resetQueuedScript = redis.NewScript(`
local pair = redis.call('GET', KEYS[1])
if not pair then
  return -1
end
if redis.call('HEXISTS', pair, 'sent_at') == 1 then
  return 0
end
if redis.call('HGET', pair, 'queued_at') ~= ARGV[1] then
  return 0
end
redis.call('HSET', pair, 'queued_at', ARGV[2])
return 1
`)

// KEYS[1]=id key
var deleteScript = redis.NewScript(`
local pair = redis.call('GET', KEYS[1])
if not pair then
  return 1
end
if redis.call('HEXISTS', pair, 'sent_at') == 1 then
  return 0
end
redis.call('DEL', pair, KEYS[1])
return 1
`)

// RedisLedger keeps one hash per (event, user) pair. Every mutation is a Lua
// script so the existence check and the write are a single atomic step.
type RedisLedger struct {
	client *redis.Client
}

func NewRedisLedger(client *redis.Client) *RedisLedger {
	return &RedisLedger{client: client}
}

func (l *RedisLedger) Create(ctx context.Context, eventID, userID string, queuedAt time.Time) (domain.CreateResult, error) {
	if eventID == "" || userID == "" {
		return domain.CreateResult{}, ErrEmptyPairKey
	}

	record := &domain.DispatchRecord{
		ID:       uuid.NewString(),
		EventID:  eventID,
		UserID:   userID,
		QueuedAt: queuedAt.UTC(),
	}

	created, err := createScript.Run(ctx, l.client,
		[]string{redisPairKey(eventID, userID), redisIDKey(record.ID)},
		record.ID, eventID, userID, encodeTime(record.QueuedAt),
	).Int()
	if err != nil {
		return domain.CreateResult{}, fmt.Errorf("failed to create dispatch record: %w", err)
	}

	if created == 1 {
		return domain.Created(record), nil
	}

	existing, err := l.Find(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrDispatchRecordNotFound) {
			return domain.AlreadyExists(nil), nil
		}
		return domain.CreateResult{}, err
	}
	return domain.AlreadyExists(existing), nil
}

func (l *RedisLedger) Find(ctx context.Context, eventID, userID string) (*domain.DispatchRecord, error) {
	fields, err := l.client.HGetAll(ctx, redisPairKey(eventID, userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to find dispatch record: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrDispatchRecordNotFound
	}
	return decodeRecord(fields)
}

func (l *RedisLedger) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	found, err := markSentScript.Run(ctx, l.client, []string{redisIDKey(id)}, encodeTime(sentAt)).Int()
	if err != nil {
		return fmt.Errorf("failed to mark dispatch record sent: %w", err)
	}
	if found == 0 {
		return domain.ErrDispatchRecordNotFound
	}
	return nil
}

func (l *RedisLedger) ResetQueued(ctx context.Context, id string, previousQueuedAt, queuedAt time.Time) error {
	status, err := resetQueuedScript.Run(ctx, l.client, []string{redisIDKey(id)},
		encodeTime(previousQueuedAt), encodeTime(queuedAt),
	).Int()
	if err != nil {
		return fmt.Errorf("failed to reset dispatch record: %w", err)
	}

	switch status {
	case 1:
		return nil
	case -1:
		return domain.ErrDispatchRecordNotFound
	default:
		return domain.ErrDispatchRecordConflict
	}
}

func (l *RedisLedger) Delete(ctx context.Context, id string) error {
	deleted, err := deleteScript.Run(ctx, l.client, []string{redisIDKey(id)}).Int()
	if err != nil {
		return fmt.Errorf("failed to delete dispatch record: %w", err)
	}
	if deleted == 0 {
		return domain.ErrDispatchRecordSent
	}
	return nil
}

// redisPairKey length-prefixes the event id so ids containing ':' cannot
// collide across pairs.
func redisPairKey(eventID, userID string) string {
	return fmt.Sprintf("%s%d:%s:%s", pairKeyPrefix, len(eventID), eventID, userID)
}

func redisIDKey(id string) string {
	return idKeyPrefix + id
}

func encodeTime(t time.Time) string {
	return strconv.FormatInt(t.UTC().UnixNano(), 10)
}

func decodeTime(s string) (time.Time, error) {
	nanos, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, ErrInvalidRecordData
	}
	return time.Unix(0, nanos).UTC(), nil
}

func decodeRecord(fields map[string]string) (*domain.DispatchRecord, error) {
	queuedAt, err := decodeTime(fields[fieldQueuedAt])
	if err != nil {
		return nil, err
	}

	record := &domain.DispatchRecord{
		ID:       fields[fieldID],
		EventID:  fields[fieldEventID],
		UserID:   fields[fieldUserID],
		QueuedAt: queuedAt,
	}
	if record.ID == "" {
		return nil, ErrInvalidRecordData
	}

	if raw, ok := fields[fieldSentAt]; ok {
		sentAt, err := decodeTime(raw)
		if err != nil {
			return nil, err
		}
		record.SentAt = &sentAt
	}

	return record, nil
}
