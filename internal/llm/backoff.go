package llm

import (
	"context"
	"time"
)

// BackoffDelays returns the sleeps between attempts for maxRetries retries:
// base, base*3, base*9, ... An empty slice means a single attempt.
func BackoffDelays(maxRetries int, base time.Duration) []time.Duration {
	if maxRetries <= 0 {
		return nil
	}
	delays := make([]time.Duration, 0, maxRetries)
	d := base
	for i := 0; i < maxRetries; i++ {
		delays = append(delays, d)
		d *= 3
	}
	return delays
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
