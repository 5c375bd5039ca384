package translations

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

const (
	minJitter = 100 * time.Millisecond
	maxJitter = 500 * time.Millisecond
)

// backoffDelay is the wait before the given zero-based attempt: base * multiplier^(attempt-1) plus jitter
func backoffDelay(attempt int, base time.Duration, multiplier float64, jitter time.Duration) time.Duration {
	if attempt <= 0 {
		return 0
	}
	exponential := float64(base) * math.Pow(multiplier, float64(attempt-1))
	return time.Duration(exponential) + jitter
}

func randomJitter() time.Duration {
	return minJitter + rand.N(maxJitter-minJitter)
}

// sleepContext waits for d or until ctx is done
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
