package scan

import (
	"fmt"

	"github.com/trapdoorsec/rinzler/pkg/failure"
)

type ScanErrorCause string

const (
	ErrCauseNoTargets     ScanErrorCause = "no targets"
	ErrCauseHostsFileRead ScanErrorCause = "hosts file read failure"
	ErrCauseAllSeedsFail  ScanErrorCause = "all seeds failed"
)

// ScanError is fatal to the scan invocation.
type ScanError struct {
	Message string
	Cause   ScanErrorCause
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan error: %s", e.Message)
}

func (e *ScanError) Severity() failure.Severity {
	return failure.SeverityFatal
}
