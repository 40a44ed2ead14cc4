package report

// ReportData is the assembled view of one session, ready for a renderer.
type ReportData struct {
	SessionID      string         `json:"session_id"`
	TotalNodes     int            `json:"total_nodes"`
	Findings       []FindingData  `json:"findings"`
	SeverityCounts SeverityCounts `json:"severity_counts"`
	ScanInfo       ScanInfo       `json:"scan_info"`
	SitemapNodes   []SitemapNode  `json:"sitemap_nodes,omitempty"`
}

type FindingData struct {
	ID            int64   `json:"id"`
	Severity      string  `json:"severity"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	URL           string  `json:"url"`
	FindingType   string  `json:"finding_type"`
	CWEID         *string `json:"cwe_id,omitempty"`
	OWASPCategory *string `json:"owasp_category,omitempty"`
	Impact        *string `json:"impact,omitempty"`
	Remediation   *string `json:"remediation,omitempty"`
}

type SeverityCounts struct {
	Critical int64 `json:"critical"`
	High     int64 `json:"high"`
	Medium   int64 `json:"medium"`
	Low      int64 `json:"low"`
	Info     int64 `json:"info"`
}

type ScanInfo struct {
	StartTime int64  `json:"start_time"`
	EndTime   *int64 `json:"end_time,omitempty"`
	Status    string `json:"status"`
	SeedURLs  string `json:"seed_urls"`
}

type SitemapNode struct {
	URL          string  `json:"url"`
	ResponseCode *int    `json:"response_code,omitempty"`
	ServiceType  *string `json:"service_type,omitempty"`
}
