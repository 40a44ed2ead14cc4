package httpclient

import "time"

// Options enumerate the per-scan client configuration. A zero value for
// any field falls back to the documented default.
type Options struct {
	// Total request deadline.
	Timeout time.Duration
	// Connect deadline; defaults to half of Timeout.
	ConnectTimeout time.Duration
	// Idle connection reuse cap per origin.
	MaxIdleConnsPerHost int
	// Idle connection TTL.
	IdleConnTimeout time.Duration
	// TCP keepalive period.
	TCPKeepalive time.Duration
	// Bounded redirect following.
	RedirectLimit int
	// Fixed identifying UA string.
	UserAgent string
}

// Response is the flattened view of an HTTP exchange the scanner works
// with. Non-2xx statuses are data, not errors; only transport failures
// surface as TransportError.
type Response struct {
	StatusCode    int
	ContentType   string
	ContentLength int64
	Headers       map[string]string
	Body          string
	Duration      time.Duration
}
