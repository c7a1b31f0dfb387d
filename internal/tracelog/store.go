package tracelog

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/handxr/ctrllayer/internal/xrtypes"
)

//go:embed schema.sql
var schemaSQL string

// Store is the append-only trace database: one file per process run,
// holding every session's TraceRecord rows keyed by run identifier.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at path and applies the schema.
// Idempotent: safe to call against an existing database file.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("tracelog: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("tracelog: connect %s: %w", path, err)
	}
	// A single writer per process; the recorder never has concurrent
	// writes in flight, so one connection avoids SQLITE_BUSY entirely.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("tracelog: pragma %q: %w", p, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("tracelog: apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record is one completed syncActions tick's persisted snapshot.
type Record struct {
	RunID   string
	Seq     int64
	Begun   xrtypes.Time
	Scalars map[string]float64
}

// insert appends one record. Called only by Recorder.Append.
func (s *Store) insert(ctx context.Context, rec Record) error {
	payload, err := canonicalJSON(rec.Scalars)
	if err != nil {
		return fmt.Errorf("tracelog: encode scalars: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO trace_records (run_id, seq, begun, scalars) VALUES (?, ?, ?, ?)`,
		rec.RunID, rec.Seq, int64(rec.Begun), payload)
	return err
}

// ListRuns returns every distinct run identifier present in the store, in
// the order sqlite's rowid naturally produces (first-inserted first).
func (s *Store) ListRuns(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT run_id FROM trace_records ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("tracelog: list runs: %w", err)
	}
	defer rows.Close()

	var runs []string
	for rows.Next() {
		var runID string
		if err := rows.Scan(&runID); err != nil {
			return nil, fmt.Errorf("tracelog: scan run id: %w", err)
		}
		runs = append(runs, runID)
	}
	return runs, rows.Err()
}

// Replay returns every record for runID in ascending seq order.
func (s *Store) Replay(ctx context.Context, runID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, begun, scalars FROM trace_records WHERE run_id = ? ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("tracelog: query run %s: %w", runID, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		rec.RunID = runID
		var begun int64
		var payload string
		if err := rows.Scan(&rec.Seq, &begun, &payload); err != nil {
			return nil, fmt.Errorf("tracelog: scan row: %w", err)
		}
		rec.Begun = xrtypes.Time(begun)
		rec.Scalars, err = decodeScalars(payload)
		if err != nil {
			return nil, fmt.Errorf("tracelog: decode run %s seq %d: %w", runID, rec.Seq, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
