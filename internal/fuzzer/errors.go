package fuzzer

import (
	"fmt"

	"github.com/trapdoorsec/rinzler/pkg/failure"
)

type FuzzErrorCause string

const (
	ErrCauseNoBaseURLs    FuzzErrorCause = "no base urls"
	ErrCauseEmptyWordlist FuzzErrorCause = "empty wordlist"
	ErrCauseInvalidURL    FuzzErrorCause = "invalid url"
	ErrCauseWordlistRead  FuzzErrorCause = "wordlist read failure"
)

// FuzzError is fatal to the fuzz invocation.
type FuzzError struct {
	Message string
	Cause   FuzzErrorCause
}

func (e *FuzzError) Error() string {
	return fmt.Sprintf("fuzz error: %s", e.Message)
}

func (e *FuzzError) Severity() failure.Severity {
	return failure.SeverityFatal
}
