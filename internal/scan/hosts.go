package scan

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/trapdoorsec/rinzler/pkg/failure"
)

// LoadURLsFromSource resolves the target list from either a single URL
// or a hosts file. At least one of the two must be provided; when both
// are given, the hosts file is used and the URL is ignored.
func LoadURLsFromSource(rawURL, hostsFile string) ([]string, failure.ClassifiedError) {
	if hostsFile != "" {
		return LoadURLsFromFile(hostsFile)
	}
	if rawURL != "" {
		return []string{rawURL}, nil
	}
	return nil, &ScanError{
		Message: "either a URL or a hosts file must be provided",
		Cause:   ErrCauseNoTargets,
	}
}

// LoadURLsFromFile parses a UTF-8 line-delimited hosts file. Each
// non-blank line is parsed as a URL; on failure the scheme "http://" is
// prepended and parsing retried; still-invalid lines are skipped with a
// warning.
func LoadURLsFromFile(path string) ([]string, failure.ClassifiedError) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ScanError{
			Message: fmt.Sprintf("failed to read hosts file %s: %v", path, err),
			Cause:   ErrCauseHostsFileRead,
		}
	}

	var urls []string
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if parsed, ok := ParseURLLine(trimmed); ok {
			urls = append(urls, parsed)
		}
	}

	if len(urls) == 0 {
		return nil, &ScanError{
			Message: fmt.Sprintf("no valid URLs found in %s", path),
			Cause:   ErrCauseNoTargets,
		}
	}
	return urls, nil
}

// ParseURLLine parses one hosts-file line, retrying with an http://
// prefix when the bare line is not an absolute URL.
func ParseURLLine(line string) (string, bool) {
	if isAbsoluteURL(line) {
		return line, true
	}
	withScheme := "http://" + line
	if isAbsoluteURL(withScheme) {
		return withScheme, true
	}
	log.Warn().Str("line", line).Msg("skipping invalid URL")
	return "", false
}

func isAbsoluteURL(raw string) bool {
	parsed, err := url.Parse(raw)
	return err == nil && parsed.Scheme != "" && parsed.Host != ""
}
