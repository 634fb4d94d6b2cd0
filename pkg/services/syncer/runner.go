package syncer

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/deal-atlas/pkg/metrics"
	"github.com/de-tools/deal-atlas/pkg/models/store"
	"github.com/de-tools/deal-atlas/pkg/store/duckdb"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

// Source yields the full deal book of a remote system.
type Source interface {
	List(ctx context.Context) ([]store.Deal, error)
}

type Sink interface {
	Replace(ctx context.Context, deals []store.Deal) error
}

type RunRecorder interface {
	Create(ctx context.Context, run store.SyncRun) error
	Finish(ctx context.Context, id string, finishedAt time.Time, imported int64, runErr *string) error
}

type Result struct {
	RunID      string
	Profile    string
	Imported   int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Runner copies every deal of a source into the local store. The replace and the
// run bookkeeping commit together.
type Runner struct {
	db      *sql.DB
	profile string
	source  Source
	sink    Sink
	runs    RunRecorder
	now     func() time.Time
}

func NewRunner(db *sql.DB, profile string, source Source, sink Sink, runs RunRecorder) *Runner {
	return &Runner{
		db:      db,
		profile: profile,
		source:  source,
		sink:    sink,
		runs:    runs,
		now:     time.Now,
	}
}

func (r *Runner) Run(ctx context.Context) (Result, error) {
	result := Result{
		RunID:     uuid.NewString(),
		Profile:   r.profile,
		StartedAt: r.now().UTC(),
	}
	logger := zerolog.Ctx(ctx).With().Str("run_id", result.RunID).Str("profile", r.profile).Logger()

	if err := r.runs.Create(ctx, store.SyncRun{ID: result.RunID, Profile: r.profile, StartedAt: result.StartedAt}); err != nil {
		metrics.SyncRuns.WithLabelValues(statusFailure).Inc()
		return result, fmt.Errorf("failed to record sync run: %w", err)
	}

	deals, err := r.source.List(ctx)
	if err != nil {
		return result, r.fail(ctx, logger, result, fmt.Errorf("failed to read source deals: %w", err))
	}

	result.FinishedAt = r.now().UTC()
	err = duckdb.InTransaction(ctx, r.db, func(ctx context.Context, _ *sql.Tx) error {
		if err := r.sink.Replace(ctx, deals); err != nil {
			return fmt.Errorf("failed to store deals: %w", err)
		}
		return r.runs.Finish(ctx, result.RunID, result.FinishedAt, int64(len(deals)), nil)
	})
	if err != nil {
		return result, r.fail(ctx, logger, result, err)
	}

	result.Imported = len(deals)
	metrics.SyncRuns.WithLabelValues(statusSuccess).Inc()
	metrics.SyncDealsImported.Set(float64(result.Imported))
	logger.Info().Int("imported", result.Imported).Dur("took", result.FinishedAt.Sub(result.StartedAt)).Msg("sync run finished")

	return result, nil
}

func (r *Runner) fail(ctx context.Context, logger zerolog.Logger, result Result, runErr error) error {
	metrics.SyncRuns.WithLabelValues(statusFailure).Inc()
	logger.Error().Err(runErr).Msg("sync run failed")

	msg := runErr.Error()
	if err := r.runs.Finish(ctx, result.RunID, r.now().UTC(), 0, &msg); err != nil {
		logger.Error().Err(err).Msg("failed to record sync failure")
	}
	return runErr
}
