package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trapdoorsec/rinzler/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "rinzler.db"))
	require.Nil(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func newSessionWithMap(t *testing.T, st *store.Store) (string, string) {
	t.Helper()
	sessionID, err := st.CreateSession(store.ScanKindCrawl, []string{"http://example.com"})
	require.Nil(t, err)
	mapID, err := st.CreateMap(sessionID)
	require.Nil(t, err)
	return sessionID, mapID
}

func insertNode(t *testing.T, st *store.Store, mapID, url string) int64 {
	t.Helper()
	id, err := st.InsertNode(mapID, store.Node{
		URL:      url,
		Domain:   "example.com",
		NodeType: store.NodeEndpoint,
		Status:   "crawled",
	})
	require.Nil(t, err)
	return id
}

func TestOpen_SchemaIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rinzler.db")

	first, err := store.Open(path)
	require.Nil(t, err)
	require.NoError(t, first.Close())

	second, err := store.Open(path)
	require.Nil(t, err)
	require.NoError(t, second.Close())
}

func TestSessionLifecycle(t *testing.T) {
	st := openStore(t)

	sessionID, err := st.CreateSession(store.ScanKindCrawl, []string{"http://a.test", "http://b.test"})
	require.Nil(t, err)

	session, err := st.GetSession(sessionID)
	require.Nil(t, err)
	assert.Equal(t, store.SessionRunning, session.Status)
	assert.Equal(t, store.ScanKindCrawl, session.ScanType)
	assert.Contains(t, session.SeedURLs, "http://a.test")
	assert.Nil(t, session.EndTime)

	require.Nil(t, st.CompleteSession(sessionID))
	session, err = st.GetSession(sessionID)
	require.Nil(t, err)
	assert.Equal(t, store.SessionCompleted, session.Status)
	assert.NotNil(t, session.EndTime)
}

func TestFailSession(t *testing.T) {
	st := openStore(t)
	sessionID, err := st.CreateSession(store.ScanKindFuzz, []string{"http://a.test"})
	require.Nil(t, err)

	require.Nil(t, st.FailSession(sessionID))
	session, err := st.GetSession(sessionID)
	require.Nil(t, err)
	assert.Equal(t, store.SessionFailed, session.Status)
}

func TestGetSession_NotFound(t *testing.T) {
	st := openStore(t)

	_, err := st.GetSession("no-such-session")
	require.NotNil(t, err)
	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, store.ErrCauseNotFound, storeErr.Cause)
}

func TestNodes_UniquePerMapAndURL(t *testing.T) {
	st := openStore(t)
	_, mapID := newSessionWithMap(t, st)

	insertNode(t, st, mapID, "http://example.com/")

	_, err := st.InsertNode(mapID, store.Node{
		URL:      "http://example.com/",
		Domain:   "example.com",
		NodeType: store.NodeEndpoint,
		Status:   "crawled",
	})
	require.NotNil(t, err)
	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, store.ErrCauseDuplicate, storeErr.Cause)
}

func TestGetNodeByURL(t *testing.T) {
	st := openStore(t)
	_, mapID := newSessionWithMap(t, st)

	inserted := insertNode(t, st, mapID, "http://example.com/api")

	id, found, err := st.GetNodeByURL(mapID, "http://example.com/api")
	require.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, inserted, id)

	_, found, err = st.GetNodeByURL(mapID, "http://example.com/other")
	require.Nil(t, err)
	assert.False(t, found)
}

func TestGetNodeURLsByDomain(t *testing.T) {
	st := openStore(t)
	_, mapID := newSessionWithMap(t, st)

	insertNode(t, st, mapID, "http://example.com/a")
	insertNode(t, st, mapID, "http://example.com/b")

	urls, err := st.GetNodeURLsByDomain("example.com")
	require.Nil(t, err)
	assert.Equal(t, []string{"http://example.com/a", "http://example.com/b"}, urls)

	urls, err = st.GetNodeURLsByDomain("other.test")
	require.Nil(t, err)
	assert.Empty(t, urls)
}

func TestEdges_UniqueTriple(t *testing.T) {
	st := openStore(t)
	_, mapID := newSessionWithMap(t, st)

	source := insertNode(t, st, mapID, "http://example.com/")
	target := insertNode(t, st, mapID, "http://example.com/about")

	_, err := st.InsertEdge(mapID, store.Edge{
		SourceNodeID: source,
		TargetNodeID: target,
		EdgeType:     store.EdgeNavigation,
	})
	require.Nil(t, err)

	// Same triple again: the schema rejects it.
	_, err = st.InsertEdge(mapID, store.Edge{
		SourceNodeID: source,
		TargetNodeID: target,
		EdgeType:     store.EdgeNavigation,
	})
	require.NotNil(t, err)
	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, store.ErrCauseDuplicate, storeErr.Cause)

	// A different kind between the same nodes is a new edge.
	_, err = st.InsertEdge(mapID, store.Edge{
		SourceNodeID: source,
		TargetNodeID: target,
		EdgeType:     store.EdgeFormAction,
	})
	require.Nil(t, err)
}

func severityFinding(nodeID int64, severity store.Severity) store.Finding {
	return store.Finding{
		NodeID:      nodeID,
		FindingType: store.FindingInterestingFile,
		Severity:    severity,
		Title:       "t",
		Description: "d",
	}
}

func TestFindings_SortedAndCounted(t *testing.T) {
	st := openStore(t)
	sessionID, mapID := newSessionWithMap(t, st)
	nodeID := insertNode(t, st, mapID, "http://example.com/x")

	for _, severity := range []store.Severity{
		store.SeverityLow, store.SeverityCritical, store.SeverityInfo,
		store.SeverityMedium, store.SeverityHigh, store.SeverityLow,
	} {
		_, err := st.InsertFinding(sessionID, severityFinding(nodeID, severity))
		require.Nil(t, err)
	}

	// One false positive must be excluded everywhere.
	fp := severityFinding(nodeID, store.SeverityCritical)
	fp.FalsePositive = true
	_, err := st.InsertFinding(sessionID, fp)
	require.Nil(t, err)

	findings, err := st.GetFindingsBySession(sessionID)
	require.Nil(t, err)
	require.Len(t, findings, 6)

	got := make([]store.Severity, 0, len(findings))
	for _, f := range findings {
		got = append(got, f.Severity)
		assert.Equal(t, "http://example.com/x", f.URL)
	}
	assert.Equal(t, []store.Severity{
		store.SeverityCritical, store.SeverityHigh, store.SeverityMedium,
		store.SeverityLow, store.SeverityLow, store.SeverityInfo,
	}, got)

	counts, err := st.GetFindingsCountBySeverity(sessionID)
	require.Nil(t, err)
	assert.Equal(t, int64(1), counts[store.SeverityCritical])
	assert.Equal(t, int64(2), counts[store.SeverityLow])

	var total int64
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, int64(6), total, "count sum equals non-false-positive inserts")
}

func TestTechnologies(t *testing.T) {
	st := openStore(t)
	_, mapID := newSessionWithMap(t, st)
	nodeID := insertNode(t, st, mapID, "http://example.com/")

	version := "1.24"
	_, err := st.InsertTechnology(store.Technology{
		NodeID:          nodeID,
		Category:        store.TechWebServer,
		Name:            "nginx",
		Version:         &version,
		Confidence:      90,
		DetectionMethod: store.DetectHeader,
	})
	require.Nil(t, err)

	techs, err := st.GetTechnologiesByNode(nodeID)
	require.Nil(t, err)
	require.Len(t, techs, 1)
	assert.Equal(t, "nginx", techs[0].Name)
	assert.Equal(t, store.TechWebServer, techs[0].Category)
	assert.Equal(t, 90, techs[0].Confidence)
}

func TestLogHTTPTransaction(t *testing.T) {
	st := openStore(t)
	sessionID, mapID := newSessionWithMap(t, st)
	nodeID := insertNode(t, st, mapID, "http://example.com/")

	code := 200
	_, err := st.LogHTTPTransaction(store.HTTPTransaction{
		SessionID:    sessionID,
		NodeID:       &nodeID,
		Method:       "GET",
		URL:          "http://example.com/",
		ResponseCode: &code,
	})
	require.Nil(t, err)
}

func TestDeleteSession_Cascades(t *testing.T) {
	st := openStore(t)
	sessionID, mapID := newSessionWithMap(t, st)
	nodeID := insertNode(t, st, mapID, "http://example.com/")
	_, err := st.InsertFinding(sessionID, severityFinding(nodeID, store.SeverityHigh))
	require.Nil(t, err)

	require.Nil(t, st.DeleteSession(sessionID))

	_, found, err := st.GetNodeByURL(mapID, "http://example.com/")
	require.Nil(t, err)
	assert.False(t, found, "nodes must cascade with the session's map")

	_, err = st.GetSession(sessionID)
	assert.NotNil(t, err)
}

func TestGetNodesBySession(t *testing.T) {
	st := openStore(t)
	sessionID, mapID := newSessionWithMap(t, st)
	insertNode(t, st, mapID, "http://example.com/a")
	insertNode(t, st, mapID, "http://example.com/b")

	nodes, err := st.GetNodesBySession(sessionID)
	require.Nil(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "http://example.com/a", nodes[0].URL)
}
