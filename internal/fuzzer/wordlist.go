package fuzzer

import (
	"fmt"
	"os"
	"strings"

	"github.com/trapdoorsec/rinzler/pkg/failure"
)

// LoadWordlist reads a UTF-8 line-delimited wordlist. Lines are trimmed;
// blank lines and lines whose first non-whitespace character is '#' are
// skipped. Fails if nothing remains.
func LoadWordlist(path string) ([]string, failure.ClassifiedError) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &FuzzError{
			Message: fmt.Sprintf("failed to read wordlist %s: %v", path, err),
			Cause:   ErrCauseWordlistRead,
		}
	}

	var words []string
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		words = append(words, trimmed)
	}

	if len(words) == 0 {
		return nil, &FuzzError{
			Message: fmt.Sprintf("wordlist %s is empty or contains only comments", path),
			Cause:   ErrCauseEmptyWordlist,
		}
	}
	return words, nil
}
