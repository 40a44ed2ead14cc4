package store

// Scan kinds.
type ScanKind string

const (
	ScanKindCrawl  ScanKind = "crawl"
	ScanKindFuzz   ScanKind = "fuzz"
	ScanKindManual ScanKind = "manual"
)

// Session status values.
type SessionStatus string

const (
	SessionRunning   SessionStatus = "running"
	SessionCompleted SessionStatus = "completed"
	SessionFailed    SessionStatus = "failed"
	SessionCancelled SessionStatus = "cancelled"
)

// Node kinds.
type NodeKind string

const (
	NodeRootHost     NodeKind = "root_host"
	NodeEndpoint     NodeKind = "endpoint"
	NodeExternalHost NodeKind = "external_host"
	NodeAPIEndpoint  NodeKind = "api_endpoint"
)

// Service kinds detected on a node.
type ServiceKind string

const (
	ServiceWeb       ServiceKind = "web"
	ServiceRESTAPI   ServiceKind = "rest_api"
	ServiceGraphQL   ServiceKind = "graphql"
	ServiceSOAP      ServiceKind = "soap"
	ServiceWebSocket ServiceKind = "websocket"
	ServiceStatic    ServiceKind = "static"
	ServiceRedirect  ServiceKind = "redirect"
)

// Edge kinds.
type EdgeKind string

const (
	EdgeNavigation EdgeKind = "navigation"
	EdgeReference  EdgeKind = "reference"
	EdgeRedirect   EdgeKind = "redirect"
	EdgeFormAction EdgeKind = "form_action"
	EdgeAPICall    EdgeKind = "api_call"
	EdgeResource   EdgeKind = "resource"
)

// Finding kinds.
type FindingKind string

const (
	FindingVulnerability         FindingKind = "vulnerability"
	FindingMisconfiguration      FindingKind = "misconfiguration"
	FindingInformationDisclosure FindingKind = "information_disclosure"
	FindingInterestingFile       FindingKind = "interesting_file"
	FindingSecurityHeaderMissing FindingKind = "missing_security_header"
	FindingInsecureTransport     FindingKind = "insecure_transport"
	FindingAuthentication        FindingKind = "authentication"
	FindingAuthorization         FindingKind = "authorization"
	FindingInjectionPoint        FindingKind = "injection_point"
	FindingOther                 FindingKind = "other"
)

// Severity levels, critical first.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Confidence levels for findings.
type Confidence string

const (
	ConfidenceConfirmed     Confidence = "confirmed"
	ConfidenceLikely        Confidence = "likely"
	ConfidencePossible      Confidence = "possible"
	ConfidenceFalsePositive Confidence = "false_positive"
)

// Technology categories.
type TechCategory string

const (
	TechWebServer         TechCategory = "web_server"
	TechApplicationServer TechCategory = "application_server"
	TechFramework         TechCategory = "framework"
	TechCMS               TechCategory = "cms"
	TechJSFramework       TechCategory = "js_framework"
	TechDatabase          TechCategory = "database"
	TechCache             TechCategory = "cache"
	TechCDN               TechCategory = "cdn"
	TechAnalytics         TechCategory = "analytics"
	TechAuthentication    TechCategory = "authentication"
	TechOther             TechCategory = "other"
)

// Technology detection methods.
type DetectionMethod string

const (
	DetectHeader          DetectionMethod = "header"
	DetectCookie          DetectionMethod = "cookie"
	DetectHTMLPattern     DetectionMethod = "html_pattern"
	DetectURLPattern      DetectionMethod = "url_pattern"
	DetectResponsePattern DetectionMethod = "response_pattern"
	DetectErrorMessage    DetectionMethod = "error_message"
	DetectFileHash        DetectionMethod = "file_hash"
)

// Session is a top-level scan run.
type Session struct {
	ID        string        `db:"id"`
	ScanType  ScanKind      `db:"scan_type"`
	StartTime int64         `db:"start_time"`
	EndTime   *int64        `db:"end_time"`
	Status    SessionStatus `db:"status"`
	SeedURLs  string        `db:"seed_urls"`
	Config    *string       `db:"config"`
}

// Node is one URL discovered under one map. (map_id, url) is unique.
type Node struct {
	ID             int64    `db:"id"`
	MapID          string   `db:"map_id"`
	URL            string   `db:"url"`
	Domain         string   `db:"domain"`
	NodeType       NodeKind `db:"node_type"`
	Status         string   `db:"status"`
	Depth          int      `db:"depth"`
	DiscoveredAt   int64    `db:"discovered_at"`
	LastCrawled    *int64   `db:"last_crawled"`
	ResponseCode   *int     `db:"response_code"`
	ResponseTimeMs *int64   `db:"response_time_ms"`
	ContentHash    *string  `db:"content_hash"`
	ContentType    *string  `db:"content_type"`
	ContentLength  *int64   `db:"content_length"`
	Title          *string  `db:"title"`
	ServiceType    *string  `db:"service_type"`
	Methods        *string  `db:"methods"`
	AuthRequired   bool     `db:"auth_required"`
	Headers        *string  `db:"headers"`
	BodySample     *string  `db:"body_sample"`
	Technologies   *string  `db:"technologies"`
	FormsCount     int      `db:"forms_count"`
	InputsCount    int      `db:"inputs_count"`
	Parameters     *string  `db:"parameters"`
	PositionX      *float64 `db:"position_x"`
	PositionY      *float64 `db:"position_y"`
}

// Edge is a directed relation between two nodes.
// (source_node_id, target_node_id, edge_type) is unique.
type Edge struct {
	ID           int64    `db:"id"`
	MapID        string   `db:"map_id"`
	SourceNodeID int64    `db:"source_node_id"`
	TargetNodeID int64    `db:"target_node_id"`
	EdgeType     EdgeKind `db:"edge_type"`
	DiscoveredAt int64    `db:"discovered_at"`
	LinkText     *string  `db:"link_text"`
	Context      *string  `db:"context"`
	HTTPMethod   *string  `db:"http_method"`
	Weight       float64  `db:"weight"`
}

// Finding is a security observation attached to a node.
type Finding struct {
	ID            int64       `db:"id"`
	SessionID     string      `db:"session_id"`
	NodeID        int64       `db:"node_id"`
	FindingType   FindingKind `db:"finding_type"`
	Severity      Severity    `db:"severity"`
	Confidence    Confidence  `db:"confidence"`
	Title         string      `db:"title"`
	Description   string      `db:"description"`
	Impact        *string     `db:"impact"`
	Remediation   *string     `db:"remediation"`
	Evidence      *string     `db:"evidence"`
	CWEID         *string     `db:"cwe_id"`
	OWASPCategory *string     `db:"owasp_category"`
	CVSSScore     *float64    `db:"cvss_score"`
	References    *string     `db:"refs"`
	DiscoveredAt  int64       `db:"discovered_at"`
	VerifiedAt    *int64      `db:"verified_at"`
	FalsePositive bool        `db:"false_positive"`
}

// Technology is a detected product on a node.
type Technology struct {
	ID              int64           `db:"id"`
	NodeID          int64           `db:"node_id"`
	Category        TechCategory    `db:"category"`
	Name            string          `db:"name"`
	Version         *string         `db:"version"`
	Confidence      int             `db:"confidence"`
	DetectionMethod DetectionMethod `db:"detection_method"`
	Evidence        *string         `db:"evidence"`
	DiscoveredAt    int64           `db:"discovered_at"`
}

// HTTPTransaction is a logged request/response pair.
type HTTPTransaction struct {
	ID              int64   `db:"id"`
	SessionID       string  `db:"session_id"`
	NodeID          *int64  `db:"node_id"`
	Method          string  `db:"method"`
	URL             string  `db:"url"`
	RequestHeaders  *string `db:"request_headers"`
	RequestBody     *string `db:"request_body"`
	ResponseCode    *int    `db:"response_code"`
	ResponseHeaders *string `db:"response_headers"`
	ResponseBody    *string `db:"response_body"`
	ResponseTimeMs  *int64  `db:"response_time_ms"`
	SizeBytes       *int64  `db:"size_bytes"`
	Timestamp       int64   `db:"timestamp"`
	Error           *string `db:"error"`
}

// SessionNode is the compact node view returned per session.
type SessionNode struct {
	NodeID       int64   `db:"id"`
	URL          string  `db:"url"`
	ResponseCode *int    `db:"response_code"`
	ServiceType  *string `db:"service_type"`
}

// SessionFinding joins a finding with its node URL for reporting.
type SessionFinding struct {
	Finding
	URL string `db:"url"`
}
