package timeutil

import "time"

// Exponential backoff parameters for bounded retries.
type BackoffParam struct {
	initialDuration time.Duration
	multiplier      float64
	maxDuration     time.Duration
}

func NewBackoffParam(
	initialDuration time.Duration,
	multiplier float64,
	maxDuration time.Duration,
) BackoffParam {
	return BackoffParam{
		initialDuration: initialDuration,
		multiplier:      multiplier,
		maxDuration:     maxDuration,
	}
}

// Delay computes the backoff delay for a 1-based attempt number, capped
// at the configured maximum.
func (b BackoffParam) Delay(attempt int) time.Duration {
	d := b.initialDuration
	for i := 1; i < attempt; i++ {
		d = time.Duration(float64(d) * b.multiplier)
		if d >= b.maxDuration {
			return b.maxDuration
		}
	}
	if b.maxDuration > 0 && d > b.maxDuration {
		return b.maxDuration
	}
	return d
}
