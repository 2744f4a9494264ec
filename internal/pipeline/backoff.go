package pipeline

import (
	"context"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"
)

// retryBackoff doubles the delay after every failed cycle up to max.
type retryBackoff struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
}

func newRetryBackoff(initial, maxDelay time.Duration) *retryBackoff {
	return &retryBackoff{initial: initial, max: maxDelay, current: initial}
}

func (b *retryBackoff) reset() {
	b.current = b.initial
}

// next returns the delay to use now and advances the schedule.
func (b *retryBackoff) next() time.Duration {
	d := b.current
	b.current = retry.NextBackoff(b.current, b.max)
	return d
}

// wait sleeps for the next delay. It returns false if ctx ended first.
func (b *retryBackoff) wait(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	return retry.SleepWithContext(ctx, b.next())
}
