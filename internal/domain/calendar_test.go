package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected TimeOfDay
	}{
		{name: "hours and minutes", input: "18:00", expected: TimeOfDay{Hour: 18}},
		{name: "with seconds", input: "18:00:30", expected: TimeOfDay{Hour: 18, Second: 30}},
		{name: "midnight", input: "00:00", expected: TimeOfDay{}},
		{name: "end of day", input: "23:59:59", expected: TimeOfDay{Hour: 23, Minute: 59, Second: 59}},
		{name: "surrounding whitespace", input: " 07:45 ", expected: TimeOfDay{Hour: 7, Minute: 45}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestParseTimeOfDayError(t *testing.T) {
	inputs := []string{"", "18", "18:0", "24:00", "12:60", "12:00:60", "aa:bb", "18:00:00:00", "-1:00"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseTimeOfDay(input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidTimeOfDay) {
				t.Errorf("expected ErrInvalidTimeOfDay, got %v", err)
			}
		})
	}
}

func TestDateAddDays(t *testing.T) {
	tests := []struct {
		name     string
		date     Date
		days     int
		expected Date
	}{
		{name: "same month", date: NewDate(2026, time.February, 8), days: -7, expected: NewDate(2026, time.February, 1)},
		{name: "crosses month", date: NewDate(2026, time.March, 1), days: -1, expected: NewDate(2026, time.February, 28)},
		{name: "crosses year", date: NewDate(2025, time.December, 31), days: 1, expected: NewDate(2026, time.January, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.date.AddDays(tt.days); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestDateOf(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}

	// 23:30 UTC is already the next day in Berlin.
	instant := time.Date(2026, time.January, 31, 23, 30, 0, 0, time.UTC)

	if got := DateOf(instant.In(loc)); got != NewDate(2026, time.February, 1) {
		t.Errorf("got %s, want 2026-02-01", got)
	}
	if got := DateOf(instant); got != NewDate(2026, time.January, 31) {
		t.Errorf("got %s, want 2026-01-31", got)
	}
}
