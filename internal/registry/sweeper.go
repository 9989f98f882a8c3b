package registry

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/spjorts/relay/internal/observability"
)

// DefaultSweepPeriod is the interval between heartbeat ticks.
const DefaultSweepPeriod = 30 * time.Second

// Sweeper ages tracked controllers on a fixed period and evicts the ones
// that have gone silent. It shares no state with connection sessions
// beyond the registry itself.
type Sweeper struct {
	reg    *Registry
	period time.Duration
	log    zerolog.Logger
}

func NewSweeper(reg *Registry, period time.Duration, log zerolog.Logger) *Sweeper {
	if period <= 0 {
		period = DefaultSweepPeriod
	}
	return &Sweeper{reg: reg, period: period, log: log}
}

// Run ticks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evicted := s.reg.TickHeartbeats()
			if len(evicted) == 0 {
				continue
			}
			observability.RecordEvictions(len(evicted))
			for _, id := range evicted {
				s.log.Warn().
					Uint64("controller_id", uint64(id)).
					Msg("controller evicted after heartbeat silence")
			}
		}
	}
}
