package worker

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// CheckPurger removes checks older than the given number of days.
type CheckPurger interface {
	CleanupOldChecks(ctx context.Context, days int) (int64, error)
}

// Retention periodically purges old parking checks. The clock is injected so
// tests can drive the ticker.
type Retention struct {
	purger   CheckPurger
	days     int
	interval time.Duration
	clock    clockwork.Clock
	log      zerolog.Logger
}

func NewRetention(purger CheckPurger, days int, interval time.Duration, clock clockwork.Clock, log zerolog.Logger) *Retention {
	return &Retention{
		purger:   purger,
		days:     days,
		interval: interval,
		clock:    clock,
		log:      log,
	}
}

// Run purges once immediately, then on every tick until the context is
// cancelled.
func (r *Retention) Run(ctx context.Context) {
	r.purge(ctx)

	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Debug().Msg("retention worker stopped")
			return
		case <-ticker.Chan():
			r.purge(ctx)
		}
	}
}

func (r *Retention) purge(ctx context.Context) {
	if _, err := r.purger.CleanupOldChecks(ctx, r.days); err != nil {
		r.log.Error().Err(err).Msg("retention purge failed")
	}
}
