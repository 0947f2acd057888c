// Package store keeps a history of evaluation reports in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/danieldk/embeval"

	_ "modernc.org/sqlite"
)

// DefaultPath is the default location of the history database.
const DefaultPath = ".embeval/history.db"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TIMESTAMP NOT NULL,
	vectors TEXT NOT NULL,
	questions TEXT NOT NULL,
	backend TEXT NOT NULL,
	row_limit INTEGER NOT NULL,
	total_correct INTEGER NOT NULL,
	total_found INTEGER NOT NULL,
	total_not_found INTEGER NOT NULL,
	total_accuracy REAL NOT NULL,
	elapsed_ns INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
	run_id TEXT NOT NULL,
	name TEXT NOT NULL,
	n_found INTEGER NOT NULL,
	n_not_found INTEGER NOT NULL,
	n_correct INTEGER NOT NULL,
	accuracy REAL NOT NULL,
	PRIMARY KEY (run_id, name),
	FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`

// Run is a stored evaluation.
type Run struct {
	ID            string
	CreatedAt     time.Time
	Vectors       string
	Questions     string
	Backend       string
	RowLimit      int
	TotalCorrect  int
	TotalFound    int
	TotalNotFound int
	TotalAccuracy float64
	Elapsed       time.Duration
}

// Store is a SQLite database of evaluation reports.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save records a report together with the files it was computed from.
func (s *Store) Save(ctx context.Context, report *embeval.Report, vectors, questions string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, vectors, questions, backend, row_limit,
			total_correct, total_found, total_not_found, total_accuracy, elapsed_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID, time.Now().UTC(), vectors, questions, report.Backend, report.RowLimit,
		report.TotalCorrect, report.TotalFound, report.TotalNotFound, report.TotalAccuracy,
		report.Elapsed.Nanoseconds())
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", report.RunID, err)
	}

	for _, cat := range report.Categories {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO categories (run_id, name, n_found, n_not_found, n_correct, accuracy)
			VALUES (?, ?, ?, ?, ?, ?)`,
			report.RunID, cat.Name, cat.Found, cat.NotFound, cat.Correct, cat.Accuracy)
		if err != nil {
			return fmt.Errorf("failed to insert category %s: %w", cat.Name, err)
		}
	}

	return tx.Commit()
}

// Runs returns the stored runs, most recent first. A positive limit caps
// the number of runs.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, created_at, vectors, questions, backend, row_limit,
			total_correct, total_found, total_not_found, total_accuracy, elapsed_ns
		FROM runs ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run     Run
			elapsed int64
		)
		if err := rows.Scan(&run.ID, &run.CreatedAt, &run.Vectors, &run.Questions, &run.Backend,
			&run.RowLimit, &run.TotalCorrect, &run.TotalFound, &run.TotalNotFound,
			&run.TotalAccuracy, &elapsed); err != nil {
			return nil, err
		}
		run.Elapsed = time.Duration(elapsed)
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Categories returns the category scores of a run, sorted by name.
func (s *Store) Categories(ctx context.Context, runID string) ([]embeval.CategoryScore, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, n_found, n_not_found, n_correct, accuracy
		FROM categories WHERE run_id = ? ORDER BY name`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []embeval.CategoryScore
	for rows.Next() {
		var cat embeval.CategoryScore
		if err := rows.Scan(&cat.Name, &cat.Found, &cat.NotFound, &cat.Correct, &cat.Accuracy); err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}

	return cats, rows.Err()
}
