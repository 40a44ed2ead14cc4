package scan

import (
	"time"

	"github.com/trapdoorsec/rinzler/internal/fuzzer"
)

// FollowMode controls cross-domain link admission.
type FollowMode int

const (
	// FollowDisabled never follows cross-domain links.
	FollowDisabled FollowMode = iota
	// FollowPrompt asks the domain oracle once per domain and caches
	// the answer. Only valid when an interactive controller is
	// attached; drivers without one must use FollowDisabled.
	FollowPrompt
	// FollowAuto follows all cross-domain links.
	FollowAuto
)

// CrawlOptions configure one crawl invocation.
type CrawlOptions struct {
	Seeds      []string
	Workers    int
	MaxDepth   int
	FollowMode FollowMode
	Timeout    time.Duration
}

// FuzzOptions configure one fuzz invocation.
type FuzzOptions struct {
	BaseURLs        []string
	WordlistPath    string
	Workers         int
	UseHeadRequests bool
	Timeout         time.Duration
	// Optional store location; when present, prior-crawl endpoints for
	// the target domains seed additional bases.
	StorePath string
	// Optional per-hit streaming callback.
	HitCallback func(fuzzer.FuzzResult)
}

// ProgressFunc receives coarse, human-readable status lines.
// Must be safe for concurrent calls.
type ProgressFunc func(message string)

// DomainOracle decides whether a cross-domain host may be crawled. It
// is consulted at most once per domain; the answer is cached for the
// scan duration. The call is serialized, so implementations may block
// on user input.
type DomainOracle func(domain string) bool
