package directory

import "time"

// userRow mirrors the columns of the membership users table that the
// reminder service reads. The table itself is owned elsewhere.
type userRow struct {
	ID               string `gorm:"primaryKey"`
	Email            string
	Name             string
	ReminderLeadDays *int
}

func (userRow) TableName() string { return "users" }

type eventRow struct {
	ID        string `gorm:"primaryKey"`
	Title     string
	StartDate time.Time `gorm:"type:date"`
	StartTime string
	Location  string
}

func (eventRow) TableName() string { return "events" }
