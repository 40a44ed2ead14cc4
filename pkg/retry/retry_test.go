package retry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trapdoorsec/rinzler/pkg/failure"
	"github.com/trapdoorsec/rinzler/pkg/retry"
	"github.com/trapdoorsec/rinzler/pkg/timeutil"
)

type fakeSleeper struct {
	slept []time.Duration
}

func (f *fakeSleeper) Sleep(d time.Duration) {
	f.slept = append(f.slept, d)
}

type testError struct {
	retryable bool
}

func (e *testError) Error() string              { return "test error" }
func (e *testError) Severity() failure.Severity { return failure.SeverityRecoverable }
func (e *testError) IsRetryable() bool          { return e.retryable }

func param(maxAttempts int, sleeper timeutil.Sleeper) retry.Param {
	return retry.NewParam(
		maxAttempts,
		timeutil.NewBackoffParam(10*time.Millisecond, 2.0, 100*time.Millisecond),
		sleeper,
	)
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	sleeper := &fakeSleeper{}
	calls := 0

	value, err := retry.Do(param(3, sleeper), func() (int, failure.ClassifiedError) {
		calls++
		return 42, nil
	})

	require.Nil(t, err)
	assert.Equal(t, 42, value)
	assert.Equal(t, 1, calls)
	assert.Empty(t, sleeper.slept)
}

func TestDo_RetriesRetryableErrors(t *testing.T) {
	sleeper := &fakeSleeper{}
	calls := 0

	value, err := retry.Do(param(3, sleeper), func() (string, failure.ClassifiedError) {
		calls++
		if calls < 3 {
			return "", &testError{retryable: true}
		}
		return "ok", nil
	})

	require.Nil(t, err)
	assert.Equal(t, "ok", value)
	assert.Equal(t, 3, calls)
	assert.Len(t, sleeper.slept, 2)
}

func TestDo_StopsOnNonRetryable(t *testing.T) {
	sleeper := &fakeSleeper{}
	calls := 0

	_, err := retry.Do(param(3, sleeper), func() (int, failure.ClassifiedError) {
		calls++
		return 0, &testError{retryable: false}
	})

	require.NotNil(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	sleeper := &fakeSleeper{}
	calls := 0

	_, err := retry.Do(param(2, sleeper), func() (int, failure.ClassifiedError) {
		calls++
		return 0, &testError{retryable: true}
	})

	require.NotNil(t, err)
	var retryErr *retry.RetryError
	require.ErrorAs(t, err, &retryErr)
	assert.Equal(t, retry.ErrCauseExhaustedAttempts, retryErr.Cause)
	assert.Equal(t, 2, calls)
}

func TestDo_ZeroAttempts(t *testing.T) {
	_, err := retry.Do(param(0, &fakeSleeper{}), func() (int, failure.ClassifiedError) {
		t.Fatal("fn must not be called")
		return 0, nil
	})

	require.NotNil(t, err)
	var retryErr *retry.RetryError
	require.ErrorAs(t, err, &retryErr)
	assert.Equal(t, retry.ErrCauseZeroAttempts, retryErr.Cause)
}
