package store

import (
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/trapdoorsec/rinzler/pkg/failure"
	"github.com/trapdoorsec/rinzler/pkg/retry"
	"github.com/trapdoorsec/rinzler/pkg/timeutil"
)

/*
Responsibilities

- Own the sqlite schema: sessions, maps, nodes, edges, findings,
  technologies, HTTP transactions
- Serialize writes; absorb transient SQLITE_BUSY with a bounded retry
- Enforce the uniqueness invariants (map_id, url) and
  (source, target, edge_type)

The handle is shared across a scan; sqlite serializes the writes itself.
*/

const (
	writeMaxAttempts   = 3
	writeBackoffStart  = 25 * time.Millisecond
	writeBackoffFactor = 2.0
	writeBackoffCap    = 250 * time.Millisecond
)

type Store struct {
	db     *sqlx.DB
	retryP retry.Param
	logger zerolog.Logger
}

// Open creates or opens the store at path, applies the connection
// pragmas and creates the schema idempotently.
func Open(path string) (*Store, failure.ClassifiedError) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, &StoreError{
			Message: fmt.Sprintf("failed to open %s: %v", path, err),
			Cause:   ErrCauseOpen,
		}
	}

	// Optimize for concurrent writers.
	pragmas := `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;  -- 64MB cache
		PRAGMA temp_store = MEMORY;
		PRAGMA foreign_keys = ON;
	`
	if _, err := db.Exec(pragmas); err != nil {
		db.Close()
		return nil, &StoreError{
			Message: fmt.Sprintf("failed to apply pragmas: %v", err),
			Cause:   ErrCauseOpen,
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, &StoreError{
			Message: fmt.Sprintf("failed to create schema: %v", err),
			Cause:   ErrCauseSchema,
		}
	}

	store := &Store{
		db: db,
		retryP: retry.NewParam(
			writeMaxAttempts,
			timeutil.NewBackoffParam(writeBackoffStart, writeBackoffFactor, writeBackoffCap),
			timeutil.NewRealSleeper(),
		),
		logger: log.With().Str("component", "store").Logger(),
	}
	store.logger.Debug().Str("path", path).Msg("store opened")
	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Exists reports whether a store file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Drop removes the store file at path.
func Drop(path string) error {
	return os.Remove(path)
}

// execWrite runs a write statement through the bounded busy-retry.
func (s *Store) execWrite(query string, args ...any) (int64, failure.ClassifiedError) {
	return retry.Do(s.retryP, func() (int64, failure.ClassifiedError) {
		res, err := s.db.Exec(query, args...)
		if err != nil {
			return 0, classifyExecError(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, &StoreError{Message: err.Error(), Cause: ErrCauseWrite}
		}
		return id, nil
	})
}

func now() int64 {
	return time.Now().Unix()
}
