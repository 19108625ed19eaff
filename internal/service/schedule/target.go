package schedule

import (
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

// EventStart interprets the event's date and wall-clock time in loc.
func EventStart(date domain.Date, tod domain.TimeOfDay, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(date.Year, date.Month, date.Day, tod.Hour, tod.Minute, tod.Second, 0, loc)
}

// TargetTime returns the instant a reminder with leadDays is due. Days are
// subtracted on the calendar of loc, so a DST change inside the lead window
// keeps the wall-clock time instead of shifting by 24h per day.
func TargetTime(date domain.Date, tod domain.TimeOfDay, leadDays int, loc *time.Location) time.Time {
	return EventStart(date, tod, loc).AddDate(0, 0, -leadDays)
}
