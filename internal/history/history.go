// Package history keeps a run ledger in SQLite so past validations of a
// project can be listed and compared without re-reading their inputs.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"ddlint/internal/finding"
)

// DefaultDBPath is the conventional ledger location in a project tree.
const DefaultDBPath = ".ddlint/history.db"

// nowUTC returns the current UTC time as an ISO 8601 string.
func nowUTC() string { return time.Now().UTC().Format(time.RFC3339) }

var schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL UNIQUE,
	recorded_at TEXT NOT NULL,
	project TEXT NOT NULL,
	findings_path TEXT NOT NULL,
	rows INTEGER NOT NULL,
	cols INTEGER NOT NULL,
	dict_fields INTEGER NOT NULL,
	completeness REAL NOT NULL,
	errors INTEGER NOT NULL,
	warns INTEGER NOT NULL,
	infos INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_project ON runs(project, recorded_at);
`

// Entry is one recorded validation run.
type Entry struct {
	RunID        string
	RecordedAt   string
	Project      string
	FindingsPath string
	Rows         int
	Cols         int
	DictFields   int
	Completeness float64
	Errors       int
	Warns        int
	Infos        int
}

// Ledger is the SQLite-backed run history.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger at path, creating the parent directory
// (e.g. .ddlint) if needed.
func Open(path string) (*Ledger, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("history: create dir %q: %w", dir, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: ping sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Close releases the underlying database handle.
func (l *Ledger) Close() error {
	if err := l.db.Close(); err != nil {
		return fmt.Errorf("history: close: %w", err)
	}
	return nil
}

// Record appends a completed run to the ledger.
func (l *Ledger) Record(project, findingsPath string, r *finding.Report) error {
	errors, warns, infos := r.Counts()
	_, err := l.db.Exec(`
		INSERT INTO runs (run_id, recorded_at, project, findings_path, rows, cols, dict_fields, completeness, errors, warns, infos)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Summary.RunID, nowUTC(), project, findingsPath,
		r.Summary.Rows, r.Summary.Cols, r.Summary.DictFields, r.Summary.Completeness,
		errors, warns, infos,
	)
	if err != nil {
		return fmt.Errorf("history: record run %q: %w", r.Summary.RunID, err)
	}
	return nil
}

// List returns recorded runs, newest first. An empty project lists every
// project; limit <= 0 means no limit.
func (l *Ledger) List(project string, limit int) ([]Entry, error) {
	query := `
		SELECT run_id, recorded_at, project, findings_path, rows, cols, dict_fields, completeness, errors, warns, infos
		FROM runs`
	var args []any
	if project != "" {
		query += " WHERE project = ?"
		args = append(args, project)
	}
	query += " ORDER BY recorded_at DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.RunID, &e.RecordedAt, &e.Project, &e.FindingsPath,
			&e.Rows, &e.Cols, &e.DictFields, &e.Completeness,
			&e.Errors, &e.Warns, &e.Infos,
		); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate runs: %w", err)
	}
	return out, nil
}

// Latest returns the most recent run for a project, or nil when the
// project has never been validated.
func (l *Ledger) Latest(project string) (*Entry, error) {
	entries, err := l.List(project, 1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}
