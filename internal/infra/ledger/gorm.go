package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

type dispatchRecordModel struct {
	ID       string     `gorm:"type:uuid;primaryKey"`
	EventID  string     `gorm:"type:text;not null;uniqueIndex:ux_reminder_dispatches_event_user,priority:1"`
	UserID   string     `gorm:"type:text;not null;uniqueIndex:ux_reminder_dispatches_event_user,priority:2"`
	QueuedAt time.Time  `gorm:"type:timestamptz;not null"`
	SentAt   *time.Time `gorm:"type:timestamptz;index"`
}

func (dispatchRecordModel) TableName() string { return "reminder_dispatches" }

// GormLedger stores dispatch records in Postgres. The composite unique index
// on (event_id, user_id) is the only coordination between replicas.
type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

func (l *GormLedger) AutoMigrate(ctx context.Context) error {
	return l.db.WithContext(ctx).AutoMigrate(&dispatchRecordModel{})
}

func (l *GormLedger) Create(ctx context.Context, eventID, userID string, queuedAt time.Time) (domain.CreateResult, error) {
	if eventID == "" || userID == "" {
		return domain.CreateResult{}, ErrEmptyPairKey
	}

	model := dispatchRecordModel{
		ID:       uuid.NewString(),
		EventID:  eventID,
		UserID:   userID,
		QueuedAt: dbTime(queuedAt),
	}

	res := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&model)
	if res.Error != nil && !errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return domain.CreateResult{}, fmt.Errorf("failed to insert dispatch record: %w", res.Error)
	}

	if res.Error != nil || res.RowsAffected == 0 {
		existing, err := l.Find(ctx, eventID, userID)
		if err != nil {
			if errors.Is(err, domain.ErrDispatchRecordNotFound) {
				return domain.AlreadyExists(nil), nil
			}
			return domain.CreateResult{}, err
		}
		return domain.AlreadyExists(existing), nil
	}

	return domain.Created(model.toDomain()), nil
}

func (l *GormLedger) Find(ctx context.Context, eventID, userID string) (*domain.DispatchRecord, error) {
	var model dispatchRecordModel
	err := l.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDispatchRecordNotFound
		}
		return nil, fmt.Errorf("failed to find dispatch record: %w", err)
	}
	return model.toDomain(), nil
}

func (l *GormLedger) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	res := l.db.WithContext(ctx).
		Model(&dispatchRecordModel{}).
		Where("id = ? AND sent_at IS NULL", id).
		Update("sent_at", dbTime(sentAt))
	if res.Error != nil {
		return fmt.Errorf("failed to mark dispatch record sent: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Nothing updated: either already sent (idempotent) or gone.
	model, err := l.findByID(ctx, id)
	if err != nil {
		return err
	}
	if model.SentAt == nil {
		return domain.ErrDispatchRecordConflict
	}
	return nil
}

func (l *GormLedger) ResetQueued(ctx context.Context, id string, previousQueuedAt, queuedAt time.Time) error {
	res := l.db.WithContext(ctx).
		Model(&dispatchRecordModel{}).
		Where("id = ? AND sent_at IS NULL AND queued_at = ?", id, dbTime(previousQueuedAt)).
		Update("queued_at", dbTime(queuedAt))
	if res.Error != nil {
		return fmt.Errorf("failed to reset dispatch record: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	if _, err := l.findByID(ctx, id); err != nil {
		return err
	}
	return domain.ErrDispatchRecordConflict
}

func (l *GormLedger) Delete(ctx context.Context, id string) error {
	res := l.db.WithContext(ctx).
		Where("id = ? AND sent_at IS NULL", id).
		Delete(&dispatchRecordModel{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete dispatch record: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	model, err := l.findByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDispatchRecordNotFound) {
			return nil
		}
		return err
	}
	if model.SentAt != nil {
		return domain.ErrDispatchRecordSent
	}
	return nil
}

func (l *GormLedger) findByID(ctx context.Context, id string) (*dispatchRecordModel, error) {
	var model dispatchRecordModel
	if err := l.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDispatchRecordNotFound
		}
		return nil, fmt.Errorf("failed to load dispatch record: %w", err)
	}
	return &model, nil
}

func (m *dispatchRecordModel) toDomain() *domain.DispatchRecord {
	record := &domain.DispatchRecord{
		ID:       m.ID,
		EventID:  m.EventID,
		UserID:   m.UserID,
		QueuedAt: m.QueuedAt.UTC(),
	}
	if m.SentAt != nil {
		t := m.SentAt.UTC()
		record.SentAt = &t
	}
	return record
}

// dbTime matches the microsecond precision of timestamptz so values read back
// compare equal to what was written.
func dbTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
