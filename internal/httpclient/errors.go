package httpclient

import (
	"fmt"

	"github.com/trapdoorsec/rinzler/pkg/failure"
)

type TransportErrorCause string

const (
	ErrCauseTimeout  TransportErrorCause = "timeout"
	ErrCauseNetwork  TransportErrorCause = "network failure"
	ErrCauseProtocol TransportErrorCause = "protocol error"
	ErrCauseBodyRead TransportErrorCause = "failed to read response body"
)

// TransportError covers DNS, connect, timeout and protocol failures.
// Per-URL; the caller logs and skips the URL.
type TransportError struct {
	Message string
	Cause   TransportErrorCause
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s", e.Message)
}

func (e *TransportError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}
