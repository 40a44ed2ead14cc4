package crawler

import "time"

// CrawlResult is the transient per-URL outcome of a crawl. Depth is
// carried so callers can verify the depth bound; Body and Headers feed
// the content hash and the passive header checks downstream.
type CrawlResult struct {
	URL           string
	StatusCode    int
	ContentType   string
	ContentLength int64
	Duration      time.Duration
	Depth         int
	Links         []string
	FormsCount    int
	ScriptsCount  int
	Headers       map[string]string
	Body          string
	Err           string
}

// ProgressFunc receives the worker id and the URL about to be fetched.
// Invoked from worker goroutines; must be safe for concurrent calls.
type ProgressFunc func(workerID int, url string)

// ResultFunc receives each CrawlResult as it completes, enabling
// streaming consumers. Must be safe for concurrent calls.
type ResultFunc func(result CrawlResult)

// workItem is one queued (url, depth) pair.
type workItem struct {
	url   string
	depth int
}
