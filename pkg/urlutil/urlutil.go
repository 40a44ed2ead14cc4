package urlutil

import (
	"net/url"
	"strings"
)

// SameDomain reports whether rawURL's host belongs to baseDomain:
// either an exact match or a subdomain (host ends with "." + baseDomain).
func SameDomain(rawURL, baseDomain string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := parsed.Hostname()
	if host == "" {
		return false
	}
	return host == baseDomain || strings.HasSuffix(host, "."+baseDomain)
}

// Domain extracts the hostname from a URL, or "" if it cannot be parsed.
func Domain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}

// ResolveHref resolves an <a href> value against the page it was found on
// and returns the absolute URL with its fragment stripped. Non-navigable
// hrefs (empty, javascript:, mailto:, tel:, bare fragments) and hrefs that
// fail to resolve return ok=false.
func ResolveHref(currentURL, href string) (string, bool) {
	if href == "" ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "#") {
		return "", false
	}

	base, err := url.Parse(currentURL)
	if err != nil {
		return "", false
	}
	resolved, err := base.Parse(href)
	if err != nil {
		return "", false
	}

	resolved.Fragment = ""
	resolved.RawFragment = ""
	return resolved.String(), true
}

// ExtractPath returns the path component of a URL. A URL with no path (or
// path "/") yields "/". Input that is not a parseable absolute URL is
// returned unchanged.
func ExtractPath(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return rawURL
	}
	if parsed.Path == "" || parsed.Path == "/" {
		return "/"
	}
	return parsed.Path
}
