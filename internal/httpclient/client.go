package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/trapdoorsec/rinzler/internal/build"
	"github.com/trapdoorsec/rinzler/pkg/failure"
)

/*
Responsibilities

- Execute GET and HEAD requests with pooled connections
- Bound every request with a total and a connect deadline
- Follow redirects up to a fixed limit
- Flatten responses into status, headers, content metadata and body

Constructed exactly once per scan and shared by all workers; the client
is immutable after construction.
*/

const (
	defaultTimeout             = 10 * time.Second
	defaultMaxIdleConnsPerHost = 50
	defaultIdleConnTimeout     = 90 * time.Second
	defaultTCPKeepalive        = 60 * time.Second
	defaultRedirectLimit       = 5
)

type Client struct {
	httpClient *http.Client
	userAgent  string
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = opts.Timeout / 2
	}
	if opts.MaxIdleConnsPerHost <= 0 {
		opts.MaxIdleConnsPerHost = defaultMaxIdleConnsPerHost
	}
	if opts.IdleConnTimeout <= 0 {
		opts.IdleConnTimeout = defaultIdleConnTimeout
	}
	if opts.TCPKeepalive <= 0 {
		opts.TCPKeepalive = defaultTCPKeepalive
	}
	if opts.RedirectLimit <= 0 {
		opts.RedirectLimit = defaultRedirectLimit
	}
	if opts.UserAgent == "" {
		opts.UserAgent = build.UserAgent()
	}

	dialer := &net.Dialer{
		Timeout:   opts.ConnectTimeout,
		KeepAlive: opts.TCPKeepalive,
	}
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
		IdleConnTimeout:     opts.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	redirectLimit := opts.RedirectLimit
	httpClient := &http.Client{
		Timeout:   opts.Timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= redirectLimit {
				// Stop following and surface the last response as data.
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	return &Client{
		httpClient: httpClient,
		userAgent:  opts.UserAgent,
	}
}

// Get fetches url and reads the full body as text.
func (c *Client) Get(ctx context.Context, url string) (Response, failure.ClassifiedError) {
	return c.do(ctx, http.MethodGet, url, true)
}

// Head fetches url without reading a body.
func (c *Client) Head(ctx context.Context, url string) (Response, failure.ClassifiedError) {
	return c.do(ctx, http.MethodHead, url, false)
}

func (c *Client) do(ctx context.Context, method, url string, readBody bool) (Response, failure.ClassifiedError) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return Response{}, &TransportError{
			Message: fmt.Sprintf("failed to create request: %v", err),
			Cause:   ErrCauseProtocol,
		}
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, classifyTransportError(err)
	}
	defer resp.Body.Close()

	result := Response{
		StatusCode:    resp.StatusCode,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
		Headers:       flattenHeaders(resp.Header),
	}

	if readBody {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return Response{}, &TransportError{
				Message: fmt.Sprintf("failed to read response body: %v", err),
				Cause:   ErrCauseBodyRead,
			}
		}
		result.Body = string(body)
		if result.ContentLength < 0 {
			result.ContentLength = int64(len(body))
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

func classifyTransportError(err error) *TransportError {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TransportError{
			Message: fmt.Sprintf("request timed out: %v", err),
			Cause:   ErrCauseTimeout,
		}
	}
	return &TransportError{
		Message: fmt.Sprintf("request failed: %v", err),
		Cause:   ErrCauseNetwork,
	}
}

func flattenHeaders(header http.Header) map[string]string {
	flat := make(map[string]string, len(header))
	for key, values := range header {
		if len(values) > 0 {
			flat[key] = values[0]
		}
	}
	return flat
}
