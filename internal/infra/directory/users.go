package directory

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

type UserDirectory struct {
	db *gorm.DB
}

func NewUserDirectory(db *gorm.DB) *UserDirectory {
	return &UserDirectory{db: db}
}

// ListReminderSubscribers returns users that opted in to reminders.
func (d *UserDirectory) ListReminderSubscribers(ctx context.Context) ([]domain.ReminderPreference, error) {
	var rows []userRow
	if err := d.db.WithContext(ctx).
		Where("reminder_lead_days IS NOT NULL").
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list reminder subscribers: %w", err)
	}

	prefs := make([]domain.ReminderPreference, 0, len(rows))
	for _, row := range rows {
		pref, ok := row.toPreference()
		if !ok {
			slog.WarnContext(ctx, "skipping user with invalid reminder preference",
				slog.String("user_id", row.ID),
			)
			continue
		}
		prefs = append(prefs, pref)
	}

	return prefs, nil
}

func (r userRow) toPreference() (domain.ReminderPreference, bool) {
	if r.ReminderLeadDays == nil || *r.ReminderLeadDays < 0 || r.Email == "" {
		return domain.ReminderPreference{}, false
	}
	return domain.ReminderPreference{
		UserID:   r.ID,
		Email:    r.Email,
		Name:     r.Name,
		LeadDays: *r.ReminderLeadDays,
	}, true
}
