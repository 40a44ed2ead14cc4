package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/trapdoorsec/rinzler/pkg/failure"
)

// CreateSession opens a new scan session in the running state and
// returns its id. Seeds are stored as a JSON array.
func (s *Store) CreateSession(kind ScanKind, seeds []string) (string, failure.ClassifiedError) {
	encoded, err := json.Marshal(seeds)
	if err != nil {
		return "", &StoreError{
			Message: fmt.Sprintf("failed to encode seed urls: %v", err),
			Cause:   ErrCauseEncodingError,
		}
	}

	id := uuid.NewString()
	_, execErr := s.execWrite(
		`INSERT INTO crawl_sessions (id, scan_type, start_time, status, seed_urls)
		 VALUES (?, ?, ?, ?, ?)`,
		id, string(kind), now(), string(SessionRunning), string(encoded),
	)
	if execErr != nil {
		return "", execErr
	}
	return id, nil
}

// CompleteSession marks the session completed and stamps its end time.
func (s *Store) CompleteSession(id string) failure.ClassifiedError {
	return s.transitionSession(id, SessionCompleted)
}

// FailSession marks the session failed and stamps its end time.
func (s *Store) FailSession(id string) failure.ClassifiedError {
	return s.transitionSession(id, SessionFailed)
}

// CancelSession marks the session cancelled and stamps its end time.
func (s *Store) CancelSession(id string) failure.ClassifiedError {
	return s.transitionSession(id, SessionCancelled)
}

func (s *Store) transitionSession(id string, status SessionStatus) failure.ClassifiedError {
	_, err := s.execWrite(
		`UPDATE crawl_sessions SET status = ?, end_time = ? WHERE id = ?`,
		string(status), now(), id,
	)
	return err
}

// GetSession fetches a session by id.
func (s *Store) GetSession(id string) (Session, failure.ClassifiedError) {
	var session Session
	err := s.db.Get(&session,
		`SELECT id, scan_type, start_time, end_time, status, seed_urls, config
		 FROM crawl_sessions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, &StoreError{
			Message: fmt.Sprintf("session %s not found", id),
			Cause:   ErrCauseNotFound,
		}
	}
	if err != nil {
		return Session{}, &StoreError{Message: err.Error(), Cause: ErrCauseQuery}
	}
	return session, nil
}

// DeleteSession removes a session; maps, nodes, edges, findings and
// transactions cascade.
func (s *Store) DeleteSession(id string) failure.ClassifiedError {
	_, err := s.execWrite(`DELETE FROM crawl_sessions WHERE id = ?`, id)
	return err
}

// CreateMap creates the map owned by a session (1:1) and returns its id.
func (s *Store) CreateMap(sessionID string) (string, failure.ClassifiedError) {
	id := uuid.NewString()
	_, err := s.execWrite(
		`INSERT INTO maps (id, session_id, created_at) VALUES (?, ?, ?)`,
		id, sessionID, now(),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetMapBySession returns the map id owned by a session.
func (s *Store) GetMapBySession(sessionID string) (string, failure.ClassifiedError) {
	var id string
	err := s.db.Get(&id, `SELECT id FROM maps WHERE session_id = ?`, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &StoreError{
			Message: fmt.Sprintf("no map for session %s", sessionID),
			Cause:   ErrCauseNotFound,
		}
	}
	if err != nil {
		return "", &StoreError{Message: err.Error(), Cause: ErrCauseQuery}
	}
	return id, nil
}
