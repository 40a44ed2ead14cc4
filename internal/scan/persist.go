package scan

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/trapdoorsec/rinzler/internal/crawler"
	"github.com/trapdoorsec/rinzler/internal/findings"
	"github.com/trapdoorsec/rinzler/internal/store"
	"github.com/trapdoorsec/rinzler/pkg/failure"
	"github.com/trapdoorsec/rinzler/pkg/hashutil"
	"github.com/trapdoorsec/rinzler/pkg/urlutil"
)

const bodySampleLimit = 2048

func nowUnix() int64 {
	return time.Now().Unix()
}

// RunPersistedCrawl executes a crawl inside a session: it opens the
// session and its map, streams every result into nodes, findings and
// the transaction log as it arrives, links the discovered edges, and
// closes the session. A failed node insert logs a warning and its
// derived findings are skipped.
func RunPersistedCrawl(
	ctx context.Context,
	st *store.Store,
	opts CrawlOptions,
	oracle DomainOracle,
	progress ProgressFunc,
	result crawler.ResultFunc,
) (string, []crawler.CrawlResult, failure.ClassifiedError) {
	sessionID, err := st.CreateSession(store.ScanKindCrawl, opts.Seeds)
	if err != nil {
		return "", nil, err
	}
	mapID, err := st.CreateMap(sessionID)
	if err != nil {
		if failErr := st.FailSession(sessionID); failErr != nil {
			log.Warn().Err(failErr).Msg("failed to mark session failed")
		}
		return sessionID, nil, err
	}

	baseDomains := make(map[string]struct{})
	for _, seed := range opts.Seeds {
		baseDomains[urlutil.Domain(seed)] = struct{}{}
	}

	persist := func(r crawler.CrawlResult) {
		persistResult(st, sessionID, mapID, baseDomains, r)
		if result != nil {
			result(r)
		}
	}

	results, crawlErr := ExecuteCrawl(ctx, opts, oracle, progress, persist, nil)
	if crawlErr != nil {
		if failErr := st.FailSession(sessionID); failErr != nil {
			log.Warn().Err(failErr).Msg("failed to mark session failed")
		}
		return sessionID, nil, crawlErr
	}

	linkEdges(st, mapID, results)

	if err := st.CompleteSession(sessionID); err != nil {
		log.Warn().Err(err).Msg("failed to mark session completed")
	}
	return sessionID, results, nil
}

// persistResult inserts the node for one crawl result, runs the passive
// analyzers against it, and appends the HTTP transaction.
func persistResult(
	st *store.Store,
	sessionID, mapID string,
	baseDomains map[string]struct{},
	r crawler.CrawlResult,
) {
	node := nodeFromResult(mapID, baseDomains, r)
	nodeID, err := st.InsertNode(mapID, node)
	if err != nil {
		log.Warn().Str("url", r.URL).Err(err).Msg("node insert failed; skipping findings")
		return
	}

	for _, finding := range findings.AnalyzeCrawlResult(r, nodeID) {
		if _, err := st.InsertFinding(sessionID, finding); err != nil {
			log.Warn().Str("url", r.URL).Err(err).Msg("finding insert failed")
		}
	}

	logTransaction(st, sessionID, nodeID, r)
}

func nodeFromResult(mapID string, baseDomains map[string]struct{}, r crawler.CrawlResult) store.Node {
	domain := urlutil.Domain(r.URL)

	nodeType := store.NodeEndpoint
	if _, same := baseDomains[domain]; !same {
		nodeType = store.NodeExternalHost
	} else if r.Depth == 0 {
		nodeType = store.NodeRootHost
	}

	responseTime := r.Duration.Milliseconds()
	crawledAt := nowUnix()
	service := string(classifyService(r))
	node := store.Node{
		MapID:          mapID,
		URL:            r.URL,
		Domain:         domain,
		NodeType:       nodeType,
		Status:         "crawled",
		Depth:          r.Depth,
		LastCrawled:    &crawledAt,
		ResponseCode:   &r.StatusCode,
		ResponseTimeMs: &responseTime,
		ServiceType:    &service,
		FormsCount:     r.FormsCount,
	}

	if r.ContentType != "" {
		node.ContentType = &r.ContentType
	}
	if r.ContentLength >= 0 {
		node.ContentLength = &r.ContentLength
	}
	if r.Body != "" {
		hash := hashutil.ContentHash([]byte(r.Body))
		node.ContentHash = &hash
		sample := r.Body
		if len(sample) > bodySampleLimit {
			sample = sample[:bodySampleLimit]
		}
		node.BodySample = &sample
	}
	if len(r.Headers) > 0 {
		if encoded, err := json.Marshal(r.Headers); err == nil {
			headers := string(encoded)
			node.Headers = &headers
		}
	}
	return node
}

// classifyService applies a coarse fingerprint from status and
// content type.
func classifyService(r crawler.CrawlResult) store.ServiceKind {
	switch {
	case r.StatusCode >= 300 && r.StatusCode < 400:
		return store.ServiceRedirect
	case strings.Contains(r.ContentType, "application/json"):
		return store.ServiceRESTAPI
	case strings.Contains(r.ContentType, "text/html"):
		return store.ServiceWeb
	case r.ContentType != "":
		return store.ServiceStatic
	default:
		return store.ServiceWeb
	}
}

func logTransaction(st *store.Store, sessionID string, nodeID int64, r crawler.CrawlResult) {
	responseTime := r.Duration.Milliseconds()
	size := r.ContentLength
	tx := store.HTTPTransaction{
		SessionID:      sessionID,
		NodeID:         &nodeID,
		Method:         "GET",
		URL:            r.URL,
		ResponseCode:   &r.StatusCode,
		ResponseTimeMs: &responseTime,
	}
	if size >= 0 {
		tx.SizeBytes = &size
	}
	if len(r.Headers) > 0 {
		if encoded, err := json.Marshal(r.Headers); err == nil {
			headers := string(encoded)
			tx.ResponseHeaders = &headers
		}
	}
	if r.Err != "" {
		tx.Error = &r.Err
	}
	if _, err := st.LogHTTPTransaction(tx); err != nil {
		log.Warn().Str("url", r.URL).Err(err).Msg("transaction log failed")
	}
}

// linkEdges records a navigation or reference edge for every discovered
// link whose endpoints both became nodes. Duplicate edges are ignored.
func linkEdges(st *store.Store, mapID string, results []crawler.CrawlResult) {
	for _, r := range results {
		sourceID, found, err := st.GetNodeByURL(mapID, r.URL)
		if err != nil || !found {
			continue
		}
		sourceDomain := urlutil.Domain(r.URL)
		for _, link := range r.Links {
			targetID, found, err := st.GetNodeByURL(mapID, link)
			if err != nil || !found {
				continue
			}
			kind := store.EdgeNavigation
			if urlutil.Domain(link) != sourceDomain {
				kind = store.EdgeReference
			}
			if _, err := st.InsertEdge(mapID, store.Edge{
				SourceNodeID: sourceID,
				TargetNodeID: targetID,
				EdgeType:     kind,
			}); err != nil {
				// Duplicate (source, target, kind) inserts are expected
				// when two pages link the same pair.
				continue
			}
		}
	}
}
