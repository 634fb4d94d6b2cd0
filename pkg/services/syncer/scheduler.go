package syncer

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type Job interface {
	Run(ctx context.Context) (Result, error)
}

// Scheduler runs a sync job on a cron spec, never overlapping runs.
type Scheduler struct {
	cron *cron.Cron
	job  Job
	ctx  context.Context
}

func NewScheduler(ctx context.Context, job Job) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		job:  job,
		ctx:  ctx,
	}
}

// Register accepts standard five-field specs and descriptors such as "@every 1h".
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.RunNow); err != nil {
		return fmt.Errorf("register sync schedule %q: %w", spec, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	zerolog.Ctx(s.ctx).Info().Int("jobs", len(s.cron.Entries())).Msg("sync scheduler started")
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	zerolog.Ctx(s.ctx).Info().Msg("sync scheduler stopped")
}

func (s *Scheduler) RunNow() {
	if _, err := s.job.Run(s.ctx); err != nil {
		zerolog.Ctx(s.ctx).Error().Err(err).Msg("scheduled sync failed")
	}
}
