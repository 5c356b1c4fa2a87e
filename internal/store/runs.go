package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Run statuses.
const (
	RunRunning   = "running"
	RunSucceeded = "succeeded"
	RunFailed    = "failed"
)

// Run is one recorded pipeline run.
type Run struct {
	ID              string
	Goal            string
	MaterialPattern string
	Status          string
	ErrorKind       string
	ErrorMessage    string
	StartedAt       time.Time
	FinishedAt      *time.Time
}

// RunRepo records pipeline runs and their terminal state.
type RunRepo interface {
	// Begin records a new run in the running state.
	Begin(ctx context.Context, id, goal, pattern string) error

	// Finish marks the run's terminal state. errKind/errMsg are empty on
	// success.
	Finish(ctx context.Context, id, status, errKind, errMsg string) error

	// Recent returns the most recent runs, newest first.
	Recent(ctx context.Context, limit int) ([]Run, error)
}

type runRepo struct {
	db *sql.DB
}

func (r *runRepo) Begin(ctx context.Context, id, goal, pattern string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO runs (id, goal, material_pattern, status, started_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, goal, pattern, RunRunning, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("begin run: %w", err)
	}
	return nil
}

func (r *runRepo) Finish(ctx context.Context, id, status, errKind, errMsg string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE runs SET status = ?, error_kind = ?, error_message = ?, finished_at = ?
		WHERE id = ?`,
		status, errKind, errMsg, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

func (r *runRepo) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, goal, material_pattern, status, error_kind, error_message,
		       started_at, finished_at
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		var finished sql.NullTime
		if err := rows.Scan(
			&run.ID, &run.Goal, &run.MaterialPattern, &run.Status,
			&run.ErrorKind, &run.ErrorMessage, &run.StartedAt, &finished,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			run.FinishedAt = &t
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
