package notion

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// linearBackOff waits base×1 before the first retry, base×2 before the
// second, and so on. No jitter; the delay sequence is deterministic.
type linearBackOff struct {
	base    time.Duration
	attempt int
}

var _ backoff.BackOff = (*linearBackOff)(nil)

func (l *linearBackOff) NextBackOff() time.Duration {
	l.attempt++
	return l.base * time.Duration(l.attempt)
}

func (l *linearBackOff) Reset() { l.attempt = 0 }
