package report

import (
	"github.com/trapdoorsec/rinzler/internal/store"
	"github.com/trapdoorsec/rinzler/pkg/failure"
)

// GatherReportData assembles the report view of a session from the
// store: scan info, node count, severity counts and the findings sorted
// critical→info. Rendering to a concrete format is the caller's job.
func GatherReportData(st *store.Store, sessionID string, includeSitemap bool) (ReportData, failure.ClassifiedError) {
	session, err := st.GetSession(sessionID)
	if err != nil {
		return ReportData{}, err
	}

	nodes, err := st.GetNodesBySession(sessionID)
	if err != nil {
		return ReportData{}, err
	}

	counts, err := st.GetFindingsCountBySeverity(sessionID)
	if err != nil {
		return ReportData{}, err
	}

	sessionFindings, err := st.GetFindingsBySession(sessionID)
	if err != nil {
		return ReportData{}, err
	}

	data := ReportData{
		SessionID:  sessionID,
		TotalNodes: len(nodes),
		SeverityCounts: SeverityCounts{
			Critical: counts[store.SeverityCritical],
			High:     counts[store.SeverityHigh],
			Medium:   counts[store.SeverityMedium],
			Low:      counts[store.SeverityLow],
			Info:     counts[store.SeverityInfo],
		},
		ScanInfo: ScanInfo{
			StartTime: session.StartTime,
			EndTime:   session.EndTime,
			Status:    string(session.Status),
			SeedURLs:  session.SeedURLs,
		},
	}

	for _, f := range sessionFindings {
		data.Findings = append(data.Findings, FindingData{
			ID:            f.ID,
			Severity:      string(f.Severity),
			Title:         f.Title,
			Description:   f.Description,
			URL:           f.URL,
			FindingType:   string(f.FindingType),
			CWEID:         f.CWEID,
			OWASPCategory: f.OWASPCategory,
			Impact:        f.Impact,
			Remediation:   f.Remediation,
		})
	}

	if includeSitemap {
		for _, n := range nodes {
			data.SitemapNodes = append(data.SitemapNodes, SitemapNode{
				URL:          n.URL,
				ResponseCode: n.ResponseCode,
				ServiceType:  n.ServiceType,
			})
		}
	}

	return data, nil
}
