package schedule

import (
	"testing"
	"time"
)

func TestWindowIsDue(t *testing.T) {
	window := Window{PollInterval: 5 * time.Minute, GracePeriod: 5 * time.Minute}
	target := time.Date(2026, time.February, 1, 17, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		expected bool
	}{
		{name: "exactly at target", now: target, expected: true},
		{name: "four minutes before", now: target.Add(-4 * time.Minute), expected: true},
		{name: "just inside left edge", now: target.Add(-10*time.Minute + time.Nanosecond), expected: true},
		{name: "left edge is excluded", now: target.Add(-10 * time.Minute), expected: false},
		{name: "two hours before", now: target.Add(-2 * time.Hour), expected: false},
		{name: "just after target", now: target.Add(time.Nanosecond), expected: false},
		{name: "long after target", now: target.Add(24 * time.Hour), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := window.IsDue(target, tt.now); got != tt.expected {
				t.Errorf("IsDue(%v) = %v, want %v", tt.now, got, tt.expected)
			}
		})
	}
}

func TestWindowWidth(t *testing.T) {
	window := Window{PollInterval: time.Minute, GracePeriod: 30 * time.Second}
	if got := window.Width(); got != 90*time.Second {
		t.Errorf("got %v, want 90s", got)
	}
}

func TestWindowZeroWidthNeverDue(t *testing.T) {
	target := time.Date(2026, time.February, 1, 17, 0, 0, 0, time.UTC)
	if (Window{}).IsDue(target, target) {
		t.Error("zero-width window should never be due")
	}
}
