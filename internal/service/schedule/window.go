package schedule

import "time"

// Window is the span before a target instant in which one tick must catch it.
type Window struct {
	PollInterval time.Duration
	GracePeriod  time.Duration
}

func (w Window) Width() time.Duration {
	return w.PollInterval + w.GracePeriod
}

// IsDue reports target-(PollInterval+GracePeriod) < now <= target.
func (w Window) IsDue(target, now time.Time) bool {
	if now.After(target) {
		return false
	}
	return now.After(target.Add(-w.Width()))
}
