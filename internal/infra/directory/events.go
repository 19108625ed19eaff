package directory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

type EventDirectory struct {
	db *gorm.DB
}

func NewEventDirectory(db *gorm.DB) *EventDirectory {
	return &EventDirectory{db: db}
}

func (d *EventDirectory) ListUpcomingEvents(ctx context.Context, from domain.Date) ([]domain.CandidateEvent, error) {
	fromDate := time.Date(from.Year, from.Month, from.Day, 0, 0, 0, 0, time.UTC)

	var rows []eventRow
	if err := d.db.WithContext(ctx).
		Where("start_date >= ?", fromDate).
		Order("start_date, id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}

	events := make([]domain.CandidateEvent, 0, len(rows))
	for _, row := range rows {
		event, err := row.toCandidate()
		if err != nil {
			slog.WarnContext(ctx, "skipping event with malformed start time",
				slog.String("event_id", row.ID),
				slog.String("start_time", row.StartTime),
				slog.String("error", err.Error()),
			)
			continue
		}
		events = append(events, event)
	}

	return events, nil
}

func (r eventRow) toCandidate() (domain.CandidateEvent, error) {
	tod, err := domain.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return domain.CandidateEvent{}, err
	}

	// A date column carries no zone; only the calendar fields are meaningful.
	return domain.CandidateEvent{
		EventID:   r.ID,
		Title:     r.Title,
		StartDate: domain.NewDate(r.StartDate.Year(), r.StartDate.Month(), r.StartDate.Day()),
		StartTime: tod,
		Location:  r.Location,
	}, nil
}
