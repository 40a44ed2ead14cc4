package fuzzer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/trapdoorsec/rinzler/internal/httpclient"
	"github.com/trapdoorsec/rinzler/pkg/failure"
	"github.com/trapdoorsec/rinzler/pkg/queue"
	"github.com/trapdoorsec/rinzler/pkg/timeutil"
	"github.com/trapdoorsec/rinzler/pkg/urlutil"
)

/*
Responsibilities

- Test every (base, word) URL product with a work-stealing worker pool
- Recursively expand a base when a probe hits ([200,400))
- Seed additional bases from prior-crawl endpoints in the store

Queue discipline: a worker pops the front of its own queue; a worker with
an empty queue steals from the back of the first non-empty peer queue.
Expansion products go to the discovering worker's own queue (route
affinity keeps a discovered subtree on one keep-alive connection).
*/

const (
	fuzzMaxEmptyIterations = 10
	fuzzIdleSleep          = 10 * time.Millisecond
)

type Fuzzer struct {
	client     *httpclient.Client
	seeder     Seeder
	progressCb ProgressFunc
	hitCb      func(FuzzResult)
	sleeper    timeutil.Sleeper
	logger     zerolog.Logger
}

func New(client *httpclient.Client) *Fuzzer {
	return &Fuzzer{
		client:  client,
		sleeper: timeutil.NewRealSleeper(),
		logger:  log.With().Str("component", "fuzzer").Logger(),
	}
}

// WithSeeder wires prior-crawl seeding. A nil seeder disables it.
func (f *Fuzzer) WithSeeder(seeder Seeder) *Fuzzer {
	f.seeder = seeder
	return f
}

func (f *Fuzzer) WithProgressCallback(cb ProgressFunc) *Fuzzer {
	f.progressCb = cb
	return f
}

// WithHitCallback streams each hit as it is found.
func (f *Fuzzer) WithHitCallback(cb func(FuzzResult)) *Fuzzer {
	f.hitCb = cb
	return f
}

func (f *Fuzzer) WithSleeper(sleeper timeutil.Sleeper) *Fuzzer {
	f.sleeper = sleeper
	return f
}

// Fuzz probes every (base, word) product and returns the recorded
// results. Fatal on an empty base set, an empty wordlist, or an
// unparseable caller-supplied base.
func (f *Fuzzer) Fuzz(ctx context.Context, cfg Config) ([]FuzzResult, failure.ClassifiedError) {
	if len(cfg.BaseURLs) == 0 {
		return nil, &FuzzError{Message: "no base URLs provided", Cause: ErrCauseNoBaseURLs}
	}
	if len(cfg.Wordlist) == 0 {
		return nil, &FuzzError{Message: "wordlist is empty", Cause: ErrCauseEmptyWordlist}
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	state := &fuzzState{
		testedBases: queue.NewSet[string](),
		queues:      make([]*fuzzQueue, workers),
	}
	for i := range state.queues {
		state.queues[i] = &fuzzQueue{items: queue.NewDeque[testItem]()}
	}

	// Caller-supplied bases run first; store-seeded bases follow.
	initialBases, err := f.collectBases(cfg, state)
	if err != nil {
		return nil, err
	}

	var items []testItem
	for _, base := range initialBases {
		for _, word := range cfg.Wordlist {
			testURL, buildErr := BuildTestURL(base.url, word)
			if buildErr != nil {
				return nil, &FuzzError{
					Message: buildErr.Error(),
					Cause:   ErrCauseInvalidURL,
				}
			}
			items = append(items, testItem{url: testURL, source: base.source})
		}
	}

	f.logger.Info().
		Int("urls", len(items)).
		Int("workers", workers).
		Msg("starting fuzz")

	// Workers pop from the front, so index order is test order.
	state.inflight.Add(int64(len(items)))
	for i, item := range items {
		state.queues[i%workers].push(item)
	}

	var wg sync.WaitGroup
	for workerID := 0; workerID < workers; workerID++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			f.runWorker(ctx, id, cfg, state)
		}(workerID)
	}
	wg.Wait()

	state.resultsMu.Lock()
	results := state.results
	state.resultsMu.Unlock()

	f.logger.Info().
		Int("results", len(results)).
		Int("hits", len(state.hits)).
		Msg("fuzz complete")
	return results, nil
}

type seedBase struct {
	url    string
	source Source
}

// collectBases validates the caller-supplied bases and appends
// prior-crawl endpoints from the store, deduplicated against the
// canonical form of every base seen so far. The canonical forms are
// pre-marked as tested so a hit equal to a seeded base does not
// re-expand it.
func (f *Fuzzer) collectBases(cfg Config, state *fuzzState) ([]seedBase, failure.ClassifiedError) {
	var bases []seedBase
	var domains []string
	seenDomains := make(map[string]struct{})

	for _, base := range cfg.BaseURLs {
		canonical, err := ExtractBaseURL(base)
		if err != nil {
			return nil, &FuzzError{
				Message: fmt.Sprintf("invalid base URL %q", base),
				Cause:   ErrCauseInvalidURL,
			}
		}
		if !state.testedBases.AddIfAbsent(canonical) {
			continue
		}
		bases = append(bases, seedBase{url: base, source: SourceInitial})
		domain := urlutil.Domain(base)
		if _, seen := seenDomains[domain]; !seen {
			seenDomains[domain] = struct{}{}
			domains = append(domains, domain)
		}
	}

	if f.seeder == nil {
		return bases, nil
	}

	for _, domain := range domains {
		urls, err := f.seeder.NodeURLsByDomain(domain)
		if err != nil {
			f.logger.Warn().Str("domain", domain).Err(err).Msg("store seeding failed")
			continue
		}
		for _, nodeURL := range urls {
			canonical, err := ExtractBaseURL(nodeURL)
			if err != nil {
				continue
			}
			if !state.testedBases.AddIfAbsent(canonical) {
				continue
			}
			bases = append(bases, seedBase{url: canonical, source: SourceStore})
		}
	}

	return bases, nil
}

func (f *Fuzzer) runWorker(ctx context.Context, workerID int, cfg Config, state *fuzzState) {
	f.logger.Debug().Int("worker", workerID).Msg("worker started")
	emptyIterations := 0

	for {
		if ctx.Err() != nil {
			break
		}

		item, ok := state.queues[workerID].popFront()
		if !ok {
			// Own queue empty: steal from the back of the first
			// non-empty peer queue.
			item, ok = state.steal(workerID)
		}
		if !ok {
			if state.allQueuesEmpty() && state.inflight.Load() == 0 {
				emptyIterations++
				if emptyIterations >= fuzzMaxEmptyIterations {
					break
				}
			} else {
				emptyIterations = 0
			}
			f.sleeper.Sleep(fuzzIdleSleep)
			continue
		}
		emptyIterations = 0

		if f.progressCb != nil {
			f.progressCb(workerID, item.url)
		}

		probeCtx, cancel := ctx, context.CancelFunc(func() {})
		if cfg.Timeout > 0 {
			probeCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		}
		resp, err := f.probe(probeCtx, item.url, cfg.UseHeadRequests)
		cancel()
		if err != nil {
			f.logger.Warn().Str("url", item.url).Err(err).Msg("fuzz request failed")
			state.inflight.Add(-1)
			continue
		}

		if resp.StatusCode < 500 {
			result := FuzzResult{
				URL:           item.url,
				StatusCode:    resp.StatusCode,
				ContentType:   resp.ContentType,
				ContentLength: resp.ContentLength,
				Source:        item.source,
			}
			state.resultsMu.Lock()
			state.results = append(state.results, result)
			state.resultsMu.Unlock()

			if resp.StatusCode >= 200 && resp.StatusCode < 400 {
				state.hitsMu.Lock()
				state.hits = append(state.hits, result)
				state.hitsMu.Unlock()
				if f.hitCb != nil {
					f.hitCb(result)
				}
				f.expandHit(workerID, item.url, cfg, state)
			}
		}

		state.inflight.Add(-1)
	}

	f.logger.Debug().Int("worker", workerID).Msg("worker finished")
}

// expandHit enqueues the full (base, word) product for a newly
// discovered base onto the discovering worker's own queue.
func (f *Fuzzer) expandHit(workerID int, hitURL string, cfg Config, state *fuzzState) {
	base, err := ExtractBaseURL(hitURL)
	if err != nil {
		return
	}

	state.testedBasesMu.Lock()
	inserted := state.testedBases.AddIfAbsent(base)
	state.testedBasesMu.Unlock()
	if !inserted {
		return
	}

	f.logger.Debug().Str("base", base).Msg("expanding discovered base")
	for _, word := range cfg.Wordlist {
		testURL, buildErr := BuildTestURL(base, word)
		if buildErr != nil {
			continue
		}
		state.inflight.Add(1)
		state.queues[workerID].push(testItem{url: testURL, source: SourceDiscovered})
	}
}

func (f *Fuzzer) probe(ctx context.Context, url string, useHead bool) (httpclient.Response, failure.ClassifiedError) {
	if useHead {
		return f.client.Head(ctx, url)
	}
	return f.client.Get(ctx, url)
}

type fuzzQueue struct {
	mu    sync.Mutex
	items *queue.Deque[testItem]
}

func (q *fuzzQueue) push(item testItem) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items.PushBack(item)
}

func (q *fuzzQueue) popFront() (testItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.PopFront()
}

func (q *fuzzQueue) popBack() (testItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.PopBack()
}

func (q *fuzzQueue) empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len() == 0
}

type fuzzState struct {
	testedBasesMu sync.Mutex
	testedBases   queue.Set[string]

	resultsMu sync.Mutex
	results   []FuzzResult

	hitsMu sync.Mutex
	hits   []FuzzResult

	queues   []*fuzzQueue
	inflight atomic.Int64
}

func (s *fuzzState) steal(thiefID int) (testItem, bool) {
	for offset := 1; offset < len(s.queues); offset++ {
		victim := (thiefID + offset) % len(s.queues)
		if item, ok := s.queues[victim].popBack(); ok {
			return item, true
		}
	}
	return testItem{}, false
}

func (s *fuzzState) allQueuesEmpty() bool {
	for _, q := range s.queues {
		if !q.empty() {
			return false
		}
	}
	return true
}
