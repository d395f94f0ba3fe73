// Package store keeps the run log in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/vigenplay/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for the run log.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			operation TEXT NOT NULL,
			digram_key TEXT NOT NULL,
			substitution_key TEXT NOT NULL,
			input_path TEXT NOT NULL,
			output_path TEXT NOT NULL,
			score INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			preview TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_trials (
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			key_length INTEGER NOT NULL,
			substitution_key TEXT NOT NULL,
			score INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			PRIMARY KEY (run_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_operation ON runs(operation);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a finished run and the key lengths it tried. An empty
// run ID is replaced with a new UUID; the stored ID is returned.
func (s *Store) InsertRun(ctx context.Context, run model.RunRecord, trials []model.Trial) (id string, err error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, ended_at, operation, digram_key, substitution_key, input_path, output_path, score, elapsed_ms, preview)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.EndedAt.UTC().Format(time.RFC3339Nano),
		run.Operation,
		run.DigramKey,
		run.SubstitutionKey,
		run.InputPath,
		run.OutputPath,
		run.Score,
		run.ElapsedMs,
		run.Preview,
	)
	if err != nil {
		return "", err
	}

	if len(trials) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO run_trials (run_id, seq, key_length, substitution_key, score, skipped)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return "", err
		}
		defer func() {
			_ = stmt.Close()
		}()
		for i, tr := range trials {
			if _, err = stmt.ExecContext(ctx, run.ID, i, tr.KeyLength, tr.SubstitutionKey, tr.Score, tr.Skipped); err != nil {
				return "", err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return run.ID, nil
}

// ListRuns returns runs matching the filter, oldest first. With Last set only
// the most recent runs are kept.
func (s *Store) ListRuns(ctx context.Context, filter model.RunFilter) ([]model.RunRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Operation != "" {
		clauses = append(clauses, "operation = ?")
		args = append(args, filter.Operation)
	}
	if filter.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, filter.Since.UTC().Format(time.RFC3339Nano))
	}
	limit := ""
	if filter.Last > 0 {
		limit = " LIMIT ?"
		args = append(args, filter.Last)
	}
	query := fmt.Sprintf(`SELECT id, started_at, ended_at, operation, digram_key, substitution_key, input_path, output_path, score, elapsed_ms, preview
		FROM runs
		WHERE %s
		ORDER BY ended_at DESC, rowid DESC%s`, strings.Join(clauses, " AND "), limit)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var runs []model.RunRecord
	for rows.Next() {
		var run model.RunRecord
		var startedAt, endedAt string
		if err := rows.Scan(&run.ID, &startedAt, &endedAt, &run.Operation, &run.DigramKey, &run.SubstitutionKey,
			&run.InputPath, &run.OutputPath, &run.Score, &run.ElapsedMs, &run.Preview); err != nil {
			return nil, err
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if run.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Newest first in SQL for LIMIT; callers read oldest first.
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
	return runs, nil
}

// ListTrials returns the key lengths a run tried, in order.
func (s *Store) ListTrials(ctx context.Context, runID string) ([]model.Trial, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key_length, substitution_key, score, skipped FROM run_trials WHERE run_id = ? ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var trials []model.Trial
	for rows.Next() {
		var tr model.Trial
		if err := rows.Scan(&tr.KeyLength, &tr.SubstitutionKey, &tr.Score, &tr.Skipped); err != nil {
			return nil, err
		}
		trials = append(trials, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return trials, nil
}
