package retry

import (
	"fmt"

	"github.com/trapdoorsec/rinzler/pkg/failure"
)

type RetryErrorCause string

const (
	ErrCauseZeroAttempts      RetryErrorCause = "zero attempts"
	ErrCauseExhaustedAttempts RetryErrorCause = "exhausted attempts"
)

type RetryError struct {
	Message string
	Cause   RetryErrorCause
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("retry error: %s", e.Message)
}

func (e *RetryError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}
