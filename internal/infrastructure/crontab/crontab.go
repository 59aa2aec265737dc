package crontab

import (
	"context"
	"time"

	"github.com/mileusna/crontab"
	"github.com/rs/zerolog"

	"github.com/jalshakti/sahayak/internal/domain/conversation"
	"github.com/jalshakti/sahayak/internal/infrastructure/observability"
	"github.com/jalshakti/sahayak/internal/utils/platformerrors"
)

const (
	sweepSchedule = "* * * * *"
	sweepJob      = "session_sweep"
)

// Crontab runs the periodic housekeeping jobs of the service.
type Crontab struct {
	ctab        *crontab.Crontab
	sessions    conversation.Store
	idleTimeout time.Duration
	jobs        *observability.JobInstrumenter
	log         zerolog.Logger
}

// NewCrontab schedules the idle session sweep against sessions.
func NewCrontab(sessions conversation.Store, idleTimeout time.Duration, jobs *observability.JobInstrumenter, log zerolog.Logger) *Crontab {
	return &Crontab{
		ctab:        crontab.New(),
		sessions:    sessions,
		idleTimeout: idleTimeout,
		jobs:        jobs,
		log:         log.With().Str("component", "crontab").Logger(),
	}
}

// Run registers the jobs and blocks until ctx is cancelled.
func (c *Crontab) Run(ctx context.Context) error {
	if c.idleTimeout > 0 {
		if err := c.ctab.AddJob(sweepSchedule, c.sweepIdleSessions); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add idle session sweep job")
		}
		c.log.Info().Dur("idle_timeout", c.idleTimeout).Msg("idle session sweep scheduled every minute")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) sweepIdleSessions() {
	sweep := func(context.Context) error {
		removed := c.sessions.Sweep(c.idleTimeout)
		if removed > 0 {
			c.log.Info().Int("closed", removed).Int("remaining", c.sessions.Len()).Msg("closed idle sessions")
		}
		return nil
	}
	if c.jobs == nil {
		_ = sweep(context.Background())
		return
	}
	_ = c.jobs.InstrumentJob(context.Background(), sweepJob, sweep)
}
