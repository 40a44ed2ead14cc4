package store

import (
	"fmt"
	"strings"

	"github.com/trapdoorsec/rinzler/pkg/failure"
)

type StoreErrorCause string

const (
	ErrCauseOpen          StoreErrorCause = "open failure"
	ErrCauseSchema        StoreErrorCause = "schema failure"
	ErrCauseWrite         StoreErrorCause = "write failure"
	ErrCauseQuery         StoreErrorCause = "query failure"
	ErrCauseDuplicate     StoreErrorCause = "unique constraint violation"
	ErrCauseBusy          StoreErrorCause = "database busy"
	ErrCauseNotFound      StoreErrorCause = "not found"
	ErrCauseEncodingError StoreErrorCause = "encoding failure"
)

// StoreError classifies persistence failures. Busy errors are retryable;
// inserts pass through a bounded retry to absorb transient SQLITE_BUSY
// under WAL.
type StoreError struct {
	Message string
	Cause   StoreErrorCause
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s", e.Message)
}

func (e *StoreError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

func (e *StoreError) IsRetryable() bool {
	return e.Cause == ErrCauseBusy
}

func classifyExecError(err error) *StoreError {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked"):
		return &StoreError{Message: msg, Cause: ErrCauseBusy}
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return &StoreError{Message: msg, Cause: ErrCauseDuplicate}
	default:
		return &StoreError{Message: msg, Cause: ErrCauseWrite}
	}
}
