package store

import (
	"database/sql"
	"errors"

	"github.com/trapdoorsec/rinzler/pkg/failure"
)

// InsertNode inserts a node under a map and returns its id. The
// (map_id, url) uniqueness invariant is enforced by the schema; a
// duplicate insert fails with ErrCauseDuplicate.
func (s *Store) InsertNode(mapID string, node Node) (int64, failure.ClassifiedError) {
	discoveredAt := node.DiscoveredAt
	if discoveredAt == 0 {
		discoveredAt = now()
	}
	return s.execWrite(
		`INSERT INTO nodes (
			map_id, url, domain, node_type, status, depth, discovered_at,
			last_crawled, response_code, response_time_ms, content_hash,
			content_type, content_length, title, service_type, methods,
			auth_required, headers, body_sample, technologies, forms_count,
			inputs_count, parameters, position_x, position_y
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		mapID, node.URL, node.Domain, string(node.NodeType), node.Status,
		node.Depth, discoveredAt, node.LastCrawled, node.ResponseCode,
		node.ResponseTimeMs, node.ContentHash, node.ContentType,
		node.ContentLength, node.Title, node.ServiceType, node.Methods,
		node.AuthRequired, node.Headers, node.BodySample, node.Technologies,
		node.FormsCount, node.InputsCount, node.Parameters,
		node.PositionX, node.PositionY,
	)
}

// GetNodeByURL looks up a node id by (map_id, url). The second return
// value reports whether the node exists.
func (s *Store) GetNodeByURL(mapID, url string) (int64, bool, failure.ClassifiedError) {
	var id int64
	err := s.db.Get(&id, `SELECT id FROM nodes WHERE map_id = ? AND url = ?`, mapID, url)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, &StoreError{Message: err.Error(), Cause: ErrCauseQuery}
	}
	return id, true, nil
}

// GetNodesBySession returns the compact node view for every node under
// the session's map.
func (s *Store) GetNodesBySession(sessionID string) ([]SessionNode, failure.ClassifiedError) {
	var nodes []SessionNode
	err := s.db.Select(&nodes,
		`SELECT n.id, n.url, n.response_code, n.service_type
		 FROM nodes n
		 JOIN maps m ON n.map_id = m.id
		 WHERE m.session_id = ?
		 ORDER BY n.id`, sessionID)
	if err != nil {
		return nil, &StoreError{Message: err.Error(), Cause: ErrCauseQuery}
	}
	return nodes, nil
}

// GetNodeURLsByDomain returns the URLs of every node recorded for a
// domain across all maps. The fuzzer seeds prior-crawl bases from this.
func (s *Store) GetNodeURLsByDomain(domain string) ([]string, failure.ClassifiedError) {
	var urls []string
	err := s.db.Select(&urls,
		`SELECT url FROM nodes WHERE domain = ? ORDER BY id`, domain)
	if err != nil {
		return nil, &StoreError{Message: err.Error(), Cause: ErrCauseQuery}
	}
	return urls, nil
}

// NodeURLsByDomain satisfies the fuzzer's Seeder interface.
func (s *Store) NodeURLsByDomain(domain string) ([]string, error) {
	urls, err := s.GetNodeURLsByDomain(domain)
	if err != nil {
		return nil, err
	}
	return urls, nil
}

// InsertEdge inserts a directed edge and returns its id. The
// (source, target, edge_type) uniqueness invariant is enforced by the
// schema.
func (s *Store) InsertEdge(mapID string, edge Edge) (int64, failure.ClassifiedError) {
	discoveredAt := edge.DiscoveredAt
	if discoveredAt == 0 {
		discoveredAt = now()
	}
	weight := edge.Weight
	if weight == 0 {
		weight = 1.0
	}
	return s.execWrite(
		`INSERT INTO edges (
			map_id, source_node_id, target_node_id, edge_type, discovered_at,
			link_text, context, http_method, weight
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		mapID, edge.SourceNodeID, edge.TargetNodeID, string(edge.EdgeType),
		discoveredAt, edge.LinkText, edge.Context, edge.HTTPMethod, weight,
	)
}
