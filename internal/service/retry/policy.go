package retry

import (
	"context"
	"fmt"
	"time"
)

// MarkSentAttempts is how often recording a delivered reminder is tried
// before the tick gives up on it.
const MarkSentAttempts = 3

// Policy retries an operation a bounded number of times with a fixed pause
// between attempts. A zero Backoff retries immediately.
type Policy struct {
	Attempts int
	Backoff  time.Duration
}

func Fixed(attempts int, backoff time.Duration) Policy {
	return Policy{Attempts: attempts, Backoff: backoff}
}

// None runs the operation exactly once.
func None() Policy {
	return Policy{Attempts: 1}
}

// Do runs fn until it succeeds or the attempts are spent. It returns the
// number of attempts made and the last error.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) (int, error) {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 && p.Backoff > 0 {
			select {
			case <-ctx.Done():
				return attempt, ctx.Err()
			case <-time.After(p.Backoff):
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return attempt + 1, nil
		}
	}

	return attempts, fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
