package store

// Schema creation is idempotent; every statement uses IF NOT EXISTS.
const schema = `
CREATE TABLE IF NOT EXISTS crawl_sessions (
    id TEXT PRIMARY KEY,
    scan_type TEXT NOT NULL DEFAULT 'crawl' CHECK(scan_type IN ('crawl', 'fuzz', 'manual')),
    start_time INTEGER NOT NULL,
    end_time INTEGER,
    status TEXT NOT NULL CHECK(status IN ('running', 'completed', 'failed', 'cancelled')),
    seed_urls TEXT NOT NULL,  -- JSON array of starting points
    config TEXT
);

CREATE TABLE IF NOT EXISTS maps (
    id TEXT PRIMARY KEY,
    session_id TEXT UNIQUE NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY(session_id) REFERENCES crawl_sessions(id) ON DELETE CASCADE
);

-- Nodes in the graph
CREATE TABLE IF NOT EXISTS nodes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    map_id TEXT NOT NULL,
    url TEXT NOT NULL,
    domain TEXT NOT NULL,
    node_type TEXT NOT NULL CHECK(node_type IN ('root_host', 'endpoint', 'external_host', 'api_endpoint')),

    -- Crawl metadata
    status TEXT NOT NULL DEFAULT 'pending',
    depth INTEGER NOT NULL DEFAULT 0,
    discovered_at INTEGER NOT NULL,
    last_crawled INTEGER,
    response_code INTEGER,
    response_time_ms INTEGER,
    content_hash TEXT,
    content_type TEXT,
    content_length INTEGER,
    title TEXT,

    -- Service fingerprint
    service_type TEXT CHECK(service_type IS NULL OR service_type IN
        ('web', 'rest_api', 'graphql', 'soap', 'websocket', 'static', 'redirect')),
    methods TEXT,
    auth_required INTEGER NOT NULL DEFAULT 0,
    headers TEXT,
    body_sample TEXT,
    technologies TEXT,
    forms_count INTEGER NOT NULL DEFAULT 0,
    inputs_count INTEGER NOT NULL DEFAULT 0,
    parameters TEXT,

    -- Graph positioning (for force-directed layout)
    position_x REAL,
    position_y REAL,

    FOREIGN KEY(map_id) REFERENCES maps(id) ON DELETE CASCADE,
    UNIQUE(map_id, url)
);

CREATE INDEX IF NOT EXISTS idx_nodes_map ON nodes(map_id);
CREATE INDEX IF NOT EXISTS idx_nodes_domain ON nodes(map_id, domain);
CREATE INDEX IF NOT EXISTS idx_nodes_status ON nodes(map_id, status);
CREATE INDEX IF NOT EXISTS idx_nodes_service ON nodes(service_type);
CREATE INDEX IF NOT EXISTS idx_nodes_response ON nodes(response_code);

-- Edges in the graph
CREATE TABLE IF NOT EXISTS edges (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    map_id TEXT NOT NULL,
    source_node_id INTEGER NOT NULL,
    target_node_id INTEGER NOT NULL,

    edge_type TEXT NOT NULL CHECK(edge_type IN (
        'navigation',      -- standard href link
        'reference',       -- cross-domain link
        'redirect',        -- HTTP redirect
        'form_action',     -- form submission target
        'api_call',        -- XHR/fetch endpoint
        'resource'         -- CSS/JS/image
    )),

    -- Edge metadata
    discovered_at INTEGER NOT NULL,
    link_text TEXT,           -- anchor text
    context TEXT,             -- surrounding HTML context
    http_method TEXT,         -- GET/POST/etc
    weight REAL DEFAULT 1.0,  -- for graph layout algorithms

    FOREIGN KEY(map_id) REFERENCES maps(id) ON DELETE CASCADE,
    FOREIGN KEY(source_node_id) REFERENCES nodes(id) ON DELETE CASCADE,
    FOREIGN KEY(target_node_id) REFERENCES nodes(id) ON DELETE CASCADE,
    UNIQUE(source_node_id, target_node_id, edge_type)
);

CREATE INDEX IF NOT EXISTS idx_edges_map ON edges(map_id);
CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source_node_id);
CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target_node_id);

-- Security findings
CREATE TABLE IF NOT EXISTS findings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL,
    node_id INTEGER NOT NULL,
    finding_type TEXT NOT NULL CHECK(finding_type IN (
        'vulnerability', 'misconfiguration', 'information_disclosure',
        'interesting_file', 'missing_security_header', 'insecure_transport',
        'authentication', 'authorization', 'injection_point', 'other'
    )),
    severity TEXT NOT NULL CHECK(severity IN ('critical', 'high', 'medium', 'low', 'info')),
    confidence TEXT NOT NULL DEFAULT 'likely' CHECK(confidence IN
        ('confirmed', 'likely', 'possible', 'false_positive')),
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    impact TEXT,
    remediation TEXT,
    evidence TEXT,            -- JSON blob
    cwe_id TEXT,
    owasp_category TEXT,
    cvss_score REAL,
    refs TEXT,
    discovered_at INTEGER NOT NULL,
    verified_at INTEGER,
    false_positive INTEGER NOT NULL DEFAULT 0,

    FOREIGN KEY(session_id) REFERENCES crawl_sessions(id) ON DELETE CASCADE,
    FOREIGN KEY(node_id) REFERENCES nodes(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_findings_session ON findings(session_id);
CREATE INDEX IF NOT EXISTS idx_findings_node ON findings(node_id);
CREATE INDEX IF NOT EXISTS idx_findings_severity ON findings(severity);
CREATE INDEX IF NOT EXISTS idx_findings_type ON findings(finding_type);
CREATE INDEX IF NOT EXISTS idx_findings_fp ON findings(false_positive);

-- Detected technologies
CREATE TABLE IF NOT EXISTS technologies (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    node_id INTEGER NOT NULL,
    category TEXT NOT NULL CHECK(category IN (
        'web_server', 'application_server', 'framework', 'cms', 'js_framework',
        'database', 'cache', 'cdn', 'analytics', 'authentication', 'other'
    )),
    name TEXT NOT NULL,
    version TEXT,
    confidence INTEGER NOT NULL DEFAULT 0 CHECK(confidence BETWEEN 0 AND 100),
    detection_method TEXT NOT NULL CHECK(detection_method IN (
        'header', 'cookie', 'html_pattern', 'url_pattern',
        'response_pattern', 'error_message', 'file_hash'
    )),
    evidence TEXT,
    discovered_at INTEGER NOT NULL,

    FOREIGN KEY(node_id) REFERENCES nodes(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_technologies_node ON technologies(node_id);
CREATE INDEX IF NOT EXISTS idx_technologies_category ON technologies(category);
CREATE INDEX IF NOT EXISTS idx_technologies_name ON technologies(name);

-- Raw HTTP transaction log
CREATE TABLE IF NOT EXISTS http_transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL,
    node_id INTEGER,
    method TEXT NOT NULL,
    url TEXT NOT NULL,
    request_headers TEXT,
    request_body TEXT,
    response_code INTEGER,
    response_headers TEXT,
    response_body TEXT,
    response_time_ms INTEGER,
    size_bytes INTEGER,
    timestamp INTEGER NOT NULL,
    error TEXT,

    FOREIGN KEY(session_id) REFERENCES crawl_sessions(id) ON DELETE CASCADE,
    FOREIGN KEY(node_id) REFERENCES nodes(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_session ON http_transactions(session_id);
CREATE INDEX IF NOT EXISTS idx_transactions_node ON http_transactions(node_id);
CREATE INDEX IF NOT EXISTS idx_transactions_timestamp ON http_transactions(timestamp);
`
