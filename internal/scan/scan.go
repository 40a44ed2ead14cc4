package scan

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/trapdoorsec/rinzler/internal/crawler"
	"github.com/trapdoorsec/rinzler/internal/extractor"
	"github.com/trapdoorsec/rinzler/internal/fuzzer"
	"github.com/trapdoorsec/rinzler/internal/httpclient"
	"github.com/trapdoorsec/rinzler/internal/store"
	"github.com/trapdoorsec/rinzler/pkg/failure"
	"github.com/trapdoorsec/rinzler/pkg/urlutil"
)

/*
Driver-facing API consumed by the CLI and TUI.

ExecuteCrawl and ExecuteFuzz run the scanners against in-memory results;
RunPersistedCrawl additionally opens a session and streams results into
nodes, findings and the transaction log as they arrive.
*/

// ExecuteCrawl crawls every seed with a shared client and returns the
// aggregated results. A seed that fails is reported through the
// progress callback and skipped; the invocation fails only when every
// seed failed and nothing was crawled.
func ExecuteCrawl(
	ctx context.Context,
	opts CrawlOptions,
	oracle DomainOracle,
	progress ProgressFunc,
	result crawler.ResultFunc,
	workerProgress crawler.ProgressFunc,
) ([]crawler.CrawlResult, failure.ClassifiedError) {
	client := httpclient.New(httpclient.Options{Timeout: opts.Timeout})

	admit, autoFollow := buildAdmission(opts.FollowMode, oracle)

	var all []crawler.CrawlResult
	var firstErr failure.ClassifiedError
	failed := 0
	for idx, seed := range opts.Seeds {
		if progress != nil && len(opts.Seeds) > 1 {
			progress(fmt.Sprintf("Crawling host %d/%d: %s", idx+1, len(opts.Seeds), seed))
		}

		c := crawler.New(client).
			WithMaxDepth(opts.MaxDepth).
			WithAutoFollow(autoFollow).
			WithCrossDomainFunc(admit).
			WithResultCallback(result).
			WithProgressCallback(workerProgress)

		results, err := c.Crawl(ctx, seed, opts.Workers)
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			if progress != nil {
				progress(fmt.Sprintf("[!] Failed to crawl %s: %v", seed, err))
			}
			continue
		}
		all = append(all, results...)
	}

	if failed == len(opts.Seeds) && firstErr != nil {
		return nil, firstErr
	}
	return all, nil
}

// buildAdmission maps a follow mode onto the extractor's cross-domain
// predicate. Prompt mode memoizes per-domain decisions and serializes
// the oracle call so two workers never prompt for the same domain
// concurrently.
func buildAdmission(mode FollowMode, oracle DomainOracle) (extractor.CrossDomainFunc, bool) {
	switch mode {
	case FollowAuto:
		return nil, true
	case FollowPrompt:
		var mu sync.Mutex
		approved := make(map[string]struct{})
		denied := make(map[string]struct{})
		admit := func(rawURL, _ string) bool {
			domain := urlutil.Domain(rawURL)
			if domain == "" {
				return false
			}

			// The lock is held across the oracle call on purpose.
			mu.Lock()
			defer mu.Unlock()

			if _, ok := approved[domain]; ok {
				return true
			}
			if _, ok := denied[domain]; ok {
				return false
			}

			allowed := oracle != nil && oracle(domain)
			if allowed {
				approved[domain] = struct{}{}
			} else {
				denied[domain] = struct{}{}
			}
			return allowed
		}
		return admit, false
	default:
		return func(string, string) bool { return false }, false
	}
}

// ExecuteFuzz loads the wordlist, optionally wires store seeding, and
// runs the fuzzer.
func ExecuteFuzz(ctx context.Context, opts FuzzOptions) ([]fuzzer.FuzzResult, failure.ClassifiedError) {
	if len(opts.BaseURLs) == 0 {
		return nil, &ScanError{Message: "no base URLs provided", Cause: ErrCauseNoTargets}
	}

	wordlist, err := fuzzer.LoadWordlist(opts.WordlistPath)
	if err != nil {
		return nil, err
	}

	client := httpclient.New(httpclient.Options{
		Timeout:       opts.Timeout,
		RedirectLimit: 3,
	})
	f := fuzzer.New(client).WithHitCallback(opts.HitCallback)

	if opts.StorePath != "" && store.Exists(opts.StorePath) {
		st, storeErr := store.Open(opts.StorePath)
		if storeErr != nil {
			log.Warn().Err(storeErr).Msg("could not open store for seeding")
		} else {
			defer st.Close()
			f = f.WithSeeder(st)
		}
	}

	return f.Fuzz(ctx, fuzzer.Config{
		BaseURLs:        opts.BaseURLs,
		Wordlist:        wordlist,
		Workers:         opts.Workers,
		UseHeadRequests: opts.UseHeadRequests,
		Timeout:         opts.Timeout,
	})
}
