package crawler

import (
	"fmt"

	"github.com/trapdoorsec/rinzler/pkg/failure"
)

type CrawlErrorCause string

const (
	ErrCauseInvalidURL CrawlErrorCause = "invalid url"
	ErrCauseNoWorkers  CrawlErrorCause = "no workers"
)

// CrawlError is fatal to the crawl invocation. Per-URL fetch errors are
// never surfaced as CrawlError; they are logged and the URL is skipped.
type CrawlError struct {
	Message string
	Cause   CrawlErrorCause
}

func (e *CrawlError) Error() string {
	return fmt.Sprintf("crawl error: %s", e.Message)
}

func (e *CrawlError) Severity() failure.Severity {
	return failure.SeverityFatal
}
