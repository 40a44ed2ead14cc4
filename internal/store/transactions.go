package store

import (
	"github.com/trapdoorsec/rinzler/pkg/failure"
)

// LogHTTPTransaction appends a request/response pair under a session,
// optionally linked to a node.
func (s *Store) LogHTTPTransaction(tx HTTPTransaction) (int64, failure.ClassifiedError) {
	timestamp := tx.Timestamp
	if timestamp == 0 {
		timestamp = now()
	}
	return s.execWrite(
		`INSERT INTO http_transactions (
			session_id, node_id, method, url, request_headers, request_body,
			response_code, response_headers, response_body, response_time_ms,
			size_bytes, timestamp, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.SessionID, tx.NodeID, tx.Method, tx.URL, tx.RequestHeaders,
		tx.RequestBody, tx.ResponseCode, tx.ResponseHeaders, tx.ResponseBody,
		tx.ResponseTimeMs, tx.SizeBytes, timestamp, tx.Error,
	)
}
