package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/trapdoorsec/rinzler/pkg/failure"
)

// EnsureDir creates dir joined with the given path segments if it does
// not already exist.
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	targetPath := append([]string{dir}, path...)
	target := filepath.Join(targetPath...)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return &FileError{
			Message: fmt.Sprintf("%v", err),
			Cause:   ErrCausePathError,
		}
	}
	return nil
}

// Exists reports whether a file or directory is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
