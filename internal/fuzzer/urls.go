package fuzzer

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildTestURL joins a base URL and a wordlist entry: the base path gets
// a trailing slash if it lacks one, and a leading slash on the word is
// stripped. Deterministic: the same inputs always produce the same URL.
func BuildTestURL(base, word string) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid base URL %q: %v", base, err)
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	parsed.Path = path + strings.TrimLeft(word, "/")
	parsed.RawPath = ""

	return parsed.String(), nil
}

// ExtractBaseURL canonicalizes a hit into a fuzz base by clearing query
// and fragment. Idempotent.
func ExtractBaseURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid URL %q: %v", rawURL, err)
	}
	parsed.RawQuery = ""
	parsed.ForceQuery = false
	parsed.Fragment = ""
	parsed.RawFragment = ""
	return parsed.String(), nil
}
