package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trapdoorsec/rinzler/pkg/failure"
	"github.com/trapdoorsec/rinzler/pkg/fileutil"
)

//go:embed wordlists/default.txt
var defaultWordlist string

// InitAssets provisions the configuration directory: the wordlists
// subdirectory and the bundled default wordlist. Existing files are
// overwritten only when force is set.
func InitAssets(configDir string, force bool) failure.ClassifiedError {
	wordlistDir := filepath.Join(configDir, "wordlists")
	wordlistPath := filepath.Join(wordlistDir, "default.txt")

	if err := fileutil.EnsureDir(configDir); err != nil {
		return err
	}
	if err := fileutil.EnsureDir(wordlistDir); err != nil {
		return err
	}

	if fileutil.Exists(wordlistPath) && !force {
		return nil
	}
	if err := os.WriteFile(wordlistPath, []byte(defaultWordlist), 0o644); err != nil {
		return &fileutil.FileError{
			Message: fmt.Sprintf("failed to write default wordlist: %v", err),
			Cause:   fileutil.ErrCausePathError,
		}
	}
	return nil
}
