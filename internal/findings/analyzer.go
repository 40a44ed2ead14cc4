package findings

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/trapdoorsec/rinzler/internal/crawler"
	"github.com/trapdoorsec/rinzler/internal/store"
)

/*
Passive security checks for crawled endpoints.

Each analyzer inspects one CrawlResult and produces zero or more
findings for the node it was recorded under. AnalyzeCrawlResult is the
union of all enabled checks.
*/

// interestingPattern is one entry of the ordered path-pattern table.
// First match wins.
type interestingPattern struct {
	pattern  string
	title    string
	severity store.Severity
	cweID    string
}

var interestingPatterns = []interestingPattern{
	{".git/", "Git Repository Exposed", store.SeverityHigh, "CWE-538"},
	{".env", "Environment File Exposed", store.SeverityCritical, "CWE-200"},
	{".git/config", "Git Configuration Exposed", store.SeverityHigh, "CWE-538"},
	{"/.aws/", "AWS Credentials Directory", store.SeverityCritical, "CWE-200"},
	{"/backup", "Backup File Accessible", store.SeverityMedium, "CWE-530"},
	{".sql", "SQL Dump File", store.SeverityHigh, "CWE-530"},
	{".bak", "Backup File", store.SeverityMedium, "CWE-530"},
	{"web.config", "Configuration File Exposed", store.SeverityHigh, "CWE-215"},
	{"phpinfo.php", "PHP Info Page", store.SeverityInfo, "CWE-200"},
	{"/admin", "Admin Interface", store.SeverityInfo, "CWE-200"},
	{"/api/", "API Endpoint", store.SeverityInfo, "CWE-200"},
}

// CheckInsecureTransport flags plain-HTTP endpoints on non-local hosts.
func CheckInsecureTransport(result crawler.CrawlResult, nodeID int64) []store.Finding {
	parsed, err := url.Parse(result.URL)
	if err != nil || parsed.Scheme != "http" {
		return nil
	}
	host := parsed.Hostname()
	if host == "" || host == "localhost" || strings.HasPrefix(host, "127.") {
		return nil
	}

	return []store.Finding{{
		NodeID:      nodeID,
		FindingType: store.FindingInsecureTransport,
		Severity:    store.SeverityMedium,
		Title:       "Insecure Transport (HTTP)",
		Description: fmt.Sprintf("The endpoint %s is served over HTTP instead of HTTPS.", result.URL),
		Impact: strPtr("Data transmitted over HTTP can be intercepted and read by attackers. " +
			"Sensitive information like credentials, session tokens, and personal data may be exposed."),
		Remediation:   strPtr("Enable HTTPS for this endpoint and redirect all HTTP traffic to HTTPS."),
		Evidence:      evidence(map[string]any{"url": result.URL, "scheme": "http"}),
		CWEID:         strPtr("CWE-319"),
		OWASPCategory: strPtr("A02:2021 - Cryptographic Failures"),
	}}
}

// CheckInterestingFiles flags sensitive paths that answered 2xx. The
// pattern table is ordered; only the first match is reported per URL.
func CheckInterestingFiles(result crawler.CrawlResult, nodeID int64) []store.Finding {
	if result.StatusCode < 200 || result.StatusCode >= 300 {
		return nil
	}
	parsed, err := url.Parse(result.URL)
	if err != nil {
		return nil
	}
	path := strings.ToLower(parsed.Path)

	for _, p := range interestingPatterns {
		if !strings.Contains(path, p.pattern) {
			continue
		}
		return []store.Finding{{
			NodeID:      nodeID,
			FindingType: store.FindingInterestingFile,
			Severity:    p.severity,
			Title:       p.title,
			Description: fmt.Sprintf("Discovered potentially sensitive file or directory: %s", result.URL),
			Impact: strPtr("This file or directory may contain sensitive information " +
				"or provide attack surface."),
			Remediation: strPtr("Review if this resource should be publicly accessible. " +
				"Consider removing or restricting access."),
			Evidence:      evidence(map[string]any{"url": result.URL, "status_code": result.StatusCode}),
			CWEID:         strPtr(p.cweID),
			OWASPCategory: strPtr("A01:2021 - Broken Access Control"),
		}}
	}
	return nil
}

// CheckErrorMessages flags 5xx responses, which may leak stack traces
// or file paths.
func CheckErrorMessages(result crawler.CrawlResult, nodeID int64) []store.Finding {
	if result.StatusCode < 500 || result.StatusCode >= 600 {
		return nil
	}
	return []store.Finding{{
		NodeID:      nodeID,
		FindingType: store.FindingInformationDisclosure,
		Severity:    store.SeverityLow,
		Title:       fmt.Sprintf("Server Error - %d", result.StatusCode),
		Description: fmt.Sprintf("Server returned error code %d for %s. Error pages may leak sensitive information.",
			result.StatusCode, result.URL),
		Impact: strPtr("Server errors may expose stack traces, file paths, " +
			"or other sensitive system information."),
		Remediation:   strPtr("Configure custom error pages that don't reveal system details."),
		Evidence:      evidence(map[string]any{"url": result.URL, "status_code": result.StatusCode}),
		CWEID:         strPtr("CWE-209"),
		OWASPCategory: strPtr("A05:2021 - Security Misconfiguration"),
	}}
}

// CheckSecurityHeaders flags a 2xx HTML response that lacks
// X-Frame-Options. It activates only when response headers were captured
// on the result.
func CheckSecurityHeaders(result crawler.CrawlResult, nodeID int64) []store.Finding {
	if result.Headers == nil {
		return nil
	}
	if result.StatusCode < 200 || result.StatusCode >= 300 {
		return nil
	}
	if !strings.Contains(result.ContentType, "text/html") {
		return nil
	}
	if _, present := result.Headers["X-Frame-Options"]; present {
		return nil
	}

	return []store.Finding{{
		NodeID:      nodeID,
		FindingType: store.FindingSecurityHeaderMissing,
		Severity:    store.SeverityLow,
		Title:       "Missing X-Frame-Options Header",
		Description: "The X-Frame-Options header is not set, which may allow clickjacking attacks.",
		Impact: strPtr("Attackers could embed this page in an iframe on a malicious site " +
			"to perform clickjacking attacks."),
		Remediation:   strPtr("Add 'X-Frame-Options: DENY' or 'X-Frame-Options: SAMEORIGIN' header to HTTP responses."),
		Evidence:      evidence(map[string]any{"url": result.URL, "missing_header": "X-Frame-Options"}),
		CWEID:         strPtr("CWE-1021"),
		OWASPCategory: strPtr("A05:2021 - Security Misconfiguration"),
	}}
}

// AnalyzeCrawlResult runs every passive check and returns the union of
// their findings.
func AnalyzeCrawlResult(result crawler.CrawlResult, nodeID int64) []store.Finding {
	var all []store.Finding
	all = append(all, CheckInsecureTransport(result, nodeID)...)
	all = append(all, CheckInterestingFiles(result, nodeID)...)
	all = append(all, CheckErrorMessages(result, nodeID)...)
	all = append(all, CheckSecurityHeaders(result, nodeID)...)
	return all
}

func strPtr(s string) *string {
	return &s
}

func evidence(fields map[string]any) *string {
	encoded, err := json.Marshal(fields)
	if err != nil {
		return nil
	}
	s := string(encoded)
	return &s
}
