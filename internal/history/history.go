package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Mavwarf/pushicons/internal/generator"
	"github.com/Mavwarf/pushicons/internal/paths"

	_ "modernc.org/sqlite"
)

// Run is one recorded generation run.
type Run struct {
	ID      int64
	Time    time.Time
	SDK     string
	Source  string
	Created int
	Failed  int
	Results []Result
}

// Result is one recorded operation of a run.
type Result struct {
	Path  string
	Op    string
	Error string // empty on success
}

// Store records runs in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the database at path and creates its schema.
func Open(path string) (*Store, error) {
	if err := paths.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Set PRAGMAs before any DDL.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	ddl := `
CREATE TABLE IF NOT EXISTS runs (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp TEXT    NOT NULL,
    sdk       TEXT    NOT NULL,
    source    TEXT    NOT NULL,
    created   INTEGER NOT NULL DEFAULT 0,
    failed    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS results (
    id     INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    seq    INTEGER NOT NULL,
    path   TEXT    NOT NULL,
    op     TEXT    NOT NULL,
    error  TEXT    NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_results_run    ON results(run_id, seq);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Record stores rep as a new run and returns its id.
func (s *Store) Record(rep generator.Report) (int64, error) {
	return s.record(time.Now(), rep)
}

func (s *Store) record(now time.Time, rep generator.Report) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (timestamp, sdk, source, created, failed) VALUES (?, ?, ?, ?, ?)`,
		now.Format(time.RFC3339Nano), rep.SDK.ID, rep.Source, rep.Created(), rep.Failed(),
	)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, r := range rep.Results {
		msg := ""
		if r.Err != nil {
			msg = r.Err.Error()
		}
		if _, err := tx.Exec(
			`INSERT INTO results (run_id, seq, path, op, error) VALUES (?, ?, ?, ?, ?)`,
			runID, i+1, r.Path, r.Op, msg,
		); err != nil {
			return 0, err
		}
	}

	return runID, tx.Commit()
}

// Recent returns up to n runs, newest first, with their results.
// n <= 0 returns every run.
func (s *Store) Recent(n int) ([]Run, error) {
	limit := n
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(
		`SELECT id, timestamp, sdk, source, created, failed FROM runs
		 ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ts string
		if err := rows.Scan(&r.ID, &ts, &r.SDK, &r.Source, &r.Created, &r.Failed); err != nil {
			return nil, err
		}
		r.Time, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "history: run %d: bad timestamp %q\n", r.ID, ts)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		runs[i].Results, err = s.results(runs[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (s *Store) results(runID int64) ([]Result, error) {
	rows, err := s.db.Query(
		`SELECT path, op, error FROM results WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Path, &r.Op, &r.Error); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Clear deletes every recorded run.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM runs`)
	return err
}
