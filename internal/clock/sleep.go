// Package clock provides time helpers shared by the polling loop and the token cache.
package clock

import (
	"context"
	"time"
)

// SleepOrStop waits for the duration, the context or the stop channel, whichever fires first.
// It reports whether the full duration elapsed.
func SleepOrStop(ctx context.Context, stop <-chan struct{}, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-stop:
		return false
	case <-timer.C:
		return true
	}
}
