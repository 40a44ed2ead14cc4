package crawler

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/trapdoorsec/rinzler/internal/extractor"
	"github.com/trapdoorsec/rinzler/internal/httpclient"
	"github.com/trapdoorsec/rinzler/pkg/failure"
	"github.com/trapdoorsec/rinzler/pkg/queue"
	"github.com/trapdoorsec/rinzler/pkg/timeutil"
)

/*
Responsibilities

- Depth-limited BFS over same-domain links with a worker pool
- At-most-once admission per URL through the shared visited set
- Round-robin distribution of discovered links across worker queues
- Cross-domain admission through the caller-supplied predicate

Termination uses an in-flight counter (incremented before every enqueue,
decremented once a dequeued URL is fully processed) backed by the
empty-queue hysteresis: a worker exits only after observing all queues
empty and zero in-flight items on ten consecutive polls.
*/

const (
	defaultMaxDepth    = 3
	maxEmptyIterations = 10
	idleSleep          = 10 * time.Millisecond
)

type Crawler struct {
	client      *httpclient.Client
	maxDepth    int
	baseDomain  string
	progressCb  ProgressFunc
	resultCb    ResultFunc
	crossDomain extractor.CrossDomainFunc
	autoFollow  bool
	sleeper     timeutil.Sleeper
	logger      zerolog.Logger
}

func New(client *httpclient.Client) *Crawler {
	return &Crawler{
		client:   client,
		maxDepth: defaultMaxDepth,
		sleeper:  timeutil.NewRealSleeper(),
		logger:   log.With().Str("component", "crawler").Logger(),
	}
}

func (c *Crawler) WithMaxDepth(depth int) *Crawler {
	c.maxDepth = depth
	return c
}

// WithBaseDomain overrides the domain derived from the seed URL.
func (c *Crawler) WithBaseDomain(domain string) *Crawler {
	c.baseDomain = domain
	return c
}

func (c *Crawler) WithProgressCallback(cb ProgressFunc) *Crawler {
	c.progressCb = cb
	return c
}

func (c *Crawler) WithResultCallback(cb ResultFunc) *Crawler {
	c.resultCb = cb
	return c
}

func (c *Crawler) WithCrossDomainFunc(admit extractor.CrossDomainFunc) *Crawler {
	c.crossDomain = admit
	return c
}

func (c *Crawler) WithAutoFollow(autoFollow bool) *Crawler {
	c.autoFollow = autoFollow
	return c
}

func (c *Crawler) WithSleeper(sleeper timeutil.Sleeper) *Crawler {
	c.sleeper = sleeper
	return c
}

// Crawl walks the link graph from seedURL with the given worker count
// and returns the aggregated per-URL results. It fails only on an
// unparseable seed URL or a worker count below one; per-URL fetch errors
// are logged and skipped.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, workers int) ([]CrawlResult, failure.ClassifiedError) {
	if workers < 1 {
		return nil, &CrawlError{
			Message: fmt.Sprintf("worker count must be positive, got %d", workers),
			Cause:   ErrCauseNoWorkers,
		}
	}

	parsed, err := url.Parse(seedURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &CrawlError{
			Message: fmt.Sprintf("invalid seed URL %q: %v", seedURL, err),
			Cause:   ErrCauseInvalidURL,
		}
	}

	baseDomain := c.baseDomain
	if baseDomain == "" {
		baseDomain = parsed.Hostname()
	}

	c.logger.Info().
		Str("seed", seedURL).
		Str("base_domain", baseDomain).
		Int("workers", workers).
		Msg("starting crawl")

	state := &crawlState{
		visited: queue.NewSet[string](),
		queues:  make([]*workerQueue, workers),
	}
	for i := range state.queues {
		state.queues[i] = &workerQueue{items: queue.NewDeque[workItem]()}
	}

	// Seed worker 0.
	state.visited.Add(seedURL)
	state.inflight.Add(1)
	state.queues[0].push(workItem{url: seedURL, depth: 0})

	var wg sync.WaitGroup
	for workerID := 0; workerID < workers; workerID++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			c.runWorker(ctx, id, baseDomain, state)
		}(workerID)
	}
	wg.Wait()

	state.resultsMu.Lock()
	results := state.results
	state.resultsMu.Unlock()

	c.logger.Info().Int("pages", len(results)).Msg("crawl complete")
	return results, nil
}

type workerQueue struct {
	mu    sync.Mutex
	items *queue.Deque[workItem]
}

func (q *workerQueue) push(item workItem) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items.PushBack(item)
}

func (q *workerQueue) popFront() (workItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.PopFront()
}

func (q *workerQueue) empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len() == 0
}

type crawlState struct {
	visitedMu sync.Mutex
	visited   queue.Set[string]

	resultsMu sync.Mutex
	results   []CrawlResult

	queues   []*workerQueue
	inflight atomic.Int64
}

func (s *crawlState) allQueuesEmpty() bool {
	for _, q := range s.queues {
		if !q.empty() {
			return false
		}
	}
	return true
}

func (c *Crawler) runWorker(ctx context.Context, workerID int, baseDomain string, state *crawlState) {
	c.logger.Debug().Int("worker", workerID).Msg("worker started")
	emptyIterations := 0

	for {
		if ctx.Err() != nil {
			// Cancellation: stop requesting new work.
			break
		}

		item, ok := state.queues[workerID].popFront()
		if !ok {
			if state.allQueuesEmpty() && state.inflight.Load() == 0 {
				emptyIterations++
				if emptyIterations >= maxEmptyIterations {
					break
				}
			} else {
				emptyIterations = 0
			}
			c.sleeper.Sleep(idleSleep)
			continue
		}
		emptyIterations = 0

		if item.depth >= c.maxDepth {
			state.inflight.Add(-1)
			continue
		}

		if c.progressCb != nil {
			c.progressCb(workerID, item.url)
		}

		result, newURLs, fetchErr := c.fetchAndParse(ctx, item, baseDomain)
		if fetchErr != nil {
			c.logger.Warn().Str("url", item.url).Err(fetchErr).Msg("crawl error")
			state.inflight.Add(-1)
			continue
		}

		if c.resultCb != nil {
			c.resultCb(result)
		}
		state.resultsMu.Lock()
		state.results = append(state.results, result)
		state.resultsMu.Unlock()

		// Round-robin distribution: discovered links are spread across all
		// workers so the discovering worker never hogs them.
		target := 0
		for _, newURL := range newURLs {
			state.visitedMu.Lock()
			admitted := state.visited.AddIfAbsent(newURL)
			state.visitedMu.Unlock()
			if !admitted {
				continue
			}
			state.inflight.Add(1)
			state.queues[target].push(workItem{url: newURL, depth: item.depth + 1})
			target = (target + 1) % len(state.queues)
		}

		state.inflight.Add(-1)
	}

	c.logger.Debug().Int("worker", workerID).Msg("worker finished")
}

func (c *Crawler) fetchAndParse(ctx context.Context, item workItem, baseDomain string) (CrawlResult, []string, failure.ClassifiedError) {
	resp, err := c.client.Get(ctx, item.url)
	if err != nil {
		return CrawlResult{}, nil, err
	}

	result := CrawlResult{
		URL:           item.url,
		StatusCode:    resp.StatusCode,
		ContentType:   resp.ContentType,
		ContentLength: resp.ContentLength,
		Duration:      resp.Duration,
		Depth:         item.depth,
		Headers:       resp.Headers,
		Body:          resp.Body,
	}

	var newURLs []string
	if strings.Contains(resp.ContentType, "text/html") {
		extraction := extractor.ExtractElements(resp.Body, item.url, baseDomain, c.crossDomain, c.autoFollow)
		result.Links = extraction.Links
		result.FormsCount = extraction.FormsCount
		result.ScriptsCount = extraction.ScriptsCount
		newURLs = extraction.Links
	}

	return result, newURLs, nil
}
