package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run records one query: which layout it ran on, what was asked, and how
// many distinct answers it produced in how many search steps.
type Run struct {
	ID        uuid.UUID
	Layout    string
	Query     string
	Level     int
	Solutions int
	Steps     int64
	CreatedAt time.Time
}

// RecordRun appends r to the history. A zero ID or creation time is filled
// in; the stored run is returned.
func (s *Store) RecordRun(ctx context.Context, r Run) (Run, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC().Truncate(time.Second)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, layout, query, level, solutions, steps, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.Layout, r.Query, r.Level, r.Solutions, r.Steps, r.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	return r, nil
}

// ListRuns returns the most recent runs first. An empty layout lists runs
// of every layout; a limit of zero or less lists them all.
func (s *Store) ListRuns(ctx context.Context, layout string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, layout, query, level, solutions, steps, created_at FROM runs
         WHERE ? = '' OR layout = ?
         ORDER BY seq DESC LIMIT ?`, layout, layout, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var id, createdAt string
		if err := rows.Scan(&id, &r.Layout, &r.Query, &r.Level, &r.Solutions, &r.Steps, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("run id %q: %w", id, err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("run %s created_at: %w", id, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
