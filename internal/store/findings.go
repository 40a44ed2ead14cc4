package store

import (
	"github.com/trapdoorsec/rinzler/pkg/failure"
)

// InsertFinding records a finding against a node under a session.
func (s *Store) InsertFinding(sessionID string, finding Finding) (int64, failure.ClassifiedError) {
	discoveredAt := finding.DiscoveredAt
	if discoveredAt == 0 {
		discoveredAt = now()
	}
	confidence := finding.Confidence
	if confidence == "" {
		confidence = ConfidenceLikely
	}
	return s.execWrite(
		`INSERT INTO findings (
			session_id, node_id, finding_type, severity, confidence, title,
			description, impact, remediation, evidence, cwe_id,
			owasp_category, cvss_score, refs, discovered_at, verified_at,
			false_positive
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, finding.NodeID, string(finding.FindingType),
		string(finding.Severity), string(confidence), finding.Title,
		finding.Description, finding.Impact, finding.Remediation,
		finding.Evidence, finding.CWEID, finding.OWASPCategory,
		finding.CVSSScore, finding.References, discoveredAt,
		finding.VerifiedAt, finding.FalsePositive,
	)
}

// GetFindingsBySession returns the session's findings joined with their
// node URLs, sorted critical→info then by id, excluding false positives.
func (s *Store) GetFindingsBySession(sessionID string) ([]SessionFinding, failure.ClassifiedError) {
	var findings []SessionFinding
	err := s.db.Select(&findings,
		`SELECT f.id, f.session_id, f.node_id, f.finding_type, f.severity,
		        f.confidence, f.title, f.description, f.impact, f.remediation,
		        f.evidence, f.cwe_id, f.owasp_category, f.cvss_score, f.refs,
		        f.discovered_at, f.verified_at, f.false_positive, n.url
		 FROM findings f
		 JOIN nodes n ON f.node_id = n.id
		 WHERE f.session_id = ? AND f.false_positive = 0
		 ORDER BY CASE f.severity
		     WHEN 'critical' THEN 1
		     WHEN 'high' THEN 2
		     WHEN 'medium' THEN 3
		     WHEN 'low' THEN 4
		     WHEN 'info' THEN 5
		 END, f.id`, sessionID)
	if err != nil {
		return nil, &StoreError{Message: err.Error(), Cause: ErrCauseQuery}
	}
	return findings, nil
}

// GetFindingsCountBySeverity returns per-severity finding counts for a
// session, excluding false positives.
func (s *Store) GetFindingsCountBySeverity(sessionID string) (map[Severity]int64, failure.ClassifiedError) {
	rows, err := s.db.Queryx(
		`SELECT severity, COUNT(*) FROM findings
		 WHERE session_id = ? AND false_positive = 0
		 GROUP BY severity`, sessionID)
	if err != nil {
		return nil, &StoreError{Message: err.Error(), Cause: ErrCauseQuery}
	}
	defer rows.Close()

	counts := make(map[Severity]int64)
	for rows.Next() {
		var severity string
		var count int64
		if err := rows.Scan(&severity, &count); err != nil {
			return nil, &StoreError{Message: err.Error(), Cause: ErrCauseQuery}
		}
		counts[Severity(severity)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Message: err.Error(), Cause: ErrCauseQuery}
	}
	return counts, nil
}

// InsertTechnology records a detected technology on a node.
func (s *Store) InsertTechnology(tech Technology) (int64, failure.ClassifiedError) {
	discoveredAt := tech.DiscoveredAt
	if discoveredAt == 0 {
		discoveredAt = now()
	}
	return s.execWrite(
		`INSERT INTO technologies (
			node_id, category, name, version, confidence, detection_method,
			evidence, discovered_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tech.NodeID, string(tech.Category), tech.Name, tech.Version,
		tech.Confidence, string(tech.DetectionMethod), tech.Evidence,
		discoveredAt,
	)
}

// GetTechnologiesByNode returns the technologies detected on a node.
func (s *Store) GetTechnologiesByNode(nodeID int64) ([]Technology, failure.ClassifiedError) {
	var techs []Technology
	err := s.db.Select(&techs,
		`SELECT id, node_id, category, name, version, confidence,
		        detection_method, evidence, discovered_at
		 FROM technologies WHERE node_id = ? ORDER BY id`, nodeID)
	if err != nil {
		return nil, &StoreError{Message: err.Error(), Cause: ErrCauseQuery}
	}
	return techs, nil
}
