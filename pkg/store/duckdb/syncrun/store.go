package syncrun

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/deal-atlas/pkg/models/store"
	"github.com/de-tools/deal-atlas/pkg/store/duckdb"
)

// Store records the history of CRM sync runs.
type Store interface {
	Create(ctx context.Context, run store.SyncRun) error
	Finish(ctx context.Context, id string, finishedAt time.Time, imported int64, runErr *string) error
	List(ctx context.Context, limit int) ([]store.SyncRun, error)
}

type defaultStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{
		db: db,
	}, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *defaultStore) execer(ctx context.Context) execer {
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		return tx
	}
	return s.db
}

func (s *defaultStore) Create(ctx context.Context, run store.SyncRun) error {
	_, err := s.execer(ctx).ExecContext(ctx,
		`INSERT INTO sync_runs (id, profile, started_at) VALUES (?, ?, ?)`,
		run.ID, run.Profile, run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("create sync run: %w", err)
	}
	return nil
}

func (s *defaultStore) Finish(ctx context.Context, id string, finishedAt time.Time, imported int64, runErr *string) error {
	res, err := s.execer(ctx).ExecContext(ctx,
		`UPDATE sync_runs SET finished_at = ?, imported = ?, error = ? WHERE id = ?`,
		finishedAt, imported, runErr, id,
	)
	if err != nil {
		return fmt.Errorf("finish sync run: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish sync run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("sync run not found: %s", id)
	}
	return nil
}

const defaultListLimit = 20

func (s *defaultStore) List(ctx context.Context, limit int) ([]store.SyncRun, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, profile, started_at, finished_at, imported, error
		FROM sync_runs
		ORDER BY started_at DESC
		LIMIT %d
	`, limit))
	if err != nil {
		return nil, fmt.Errorf("query sync runs: %w", err)
	}
	defer rows.Close()

	runs := make([]store.SyncRun, 0)
	for rows.Next() {
		var (
			run      store.SyncRun
			finished sql.NullTime
			runErr   sql.NullString
		)
		if err := rows.Scan(&run.ID, &run.Profile, &run.StartedAt, &finished, &run.Imported, &runErr); err != nil {
			return nil, err
		}
		run.StartedAt = run.StartedAt.UTC()
		if finished.Valid {
			t := finished.Time.UTC()
			run.FinishedAt = &t
		}
		if runErr.Valid {
			e := runErr.String
			run.Error = &e
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
