package fileutil

import (
	"fmt"

	"github.com/trapdoorsec/rinzler/pkg/failure"
)

type FileErrorCause string

const (
	ErrCausePathError FileErrorCause = "path error"
)

type FileError struct {
	Message string
	Cause   FileErrorCause
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file error: %s", e.Message)
}

func (e *FileError) Severity() failure.Severity {
	return failure.SeverityFatal
}
