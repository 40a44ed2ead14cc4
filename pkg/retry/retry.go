package retry

import (
	"fmt"

	"github.com/trapdoorsec/rinzler/pkg/failure"
	"github.com/trapdoorsec/rinzler/pkg/timeutil"
)

// Param bounds a retry loop. Attempts are 1-based; MaxAttempts of 1
// means no retry at all.
type Param struct {
	MaxAttempts int
	Backoff     timeutil.BackoffParam
	Sleeper     timeutil.Sleeper
}

func NewParam(maxAttempts int, backoff timeutil.BackoffParam, sleeper timeutil.Sleeper) Param {
	return Param{
		MaxAttempts: maxAttempts,
		Backoff:     backoff,
		Sleeper:     sleeper,
	}
}

// Do executes fn up to MaxAttempts times, sleeping between attempts with
// exponential backoff. Only errors reporting IsRetryable() true trigger a
// retry; everything else is returned immediately. The store uses this to
// absorb transient SQLITE_BUSY under WAL.
func Do[T any](param Param, fn func() (T, failure.ClassifiedError)) (T, failure.ClassifiedError) {
	var zero T
	if param.MaxAttempts < 1 {
		return zero, &RetryError{
			Message: "max attempts cannot be 0",
			Cause:   ErrCauseZeroAttempts,
		}
	}

	var lastErr failure.ClassifiedError
	for attempt := 1; attempt <= param.MaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return zero, err
		}
		if attempt == param.MaxAttempts {
			break
		}
		if param.Sleeper != nil {
			param.Sleeper.Sleep(param.Backoff.Delay(attempt))
		}
	}

	return zero, &RetryError{
		Message: fmt.Sprintf("exhausted %d attempts, last error: %v", param.MaxAttempts, lastErr),
		Cause:   ErrCauseExhaustedAttempts,
	}
}

func isRetryable(err failure.ClassifiedError) bool {
	type hasRetryable interface {
		IsRetryable() bool
	}
	if r, ok := err.(hasRetryable); ok {
		return r.IsRetryable()
	}
	return false
}
