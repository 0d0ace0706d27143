package workers

import (
	"time"

	"github.com/social-memo/social-memo/internal/logger"
	"github.com/social-memo/social-memo/internal/service"
)

// SessionSweeper periodically evicts expired sessions from the in-memory
// session table. Eviction on lookup is what keeps expired tokens unusable;
// the sweeper only stops abandoned tokens from accumulating between lookups.
type SessionSweeper struct {
	sessions service.SessionService
	interval time.Duration
	logger   *logger.Logger
}

func NewSessionSweeper(sessions service.SessionService, interval time.Duration, logger *logger.Logger) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

// Run spawns the sweep loop and returns immediately. The loop runs for the
// lifetime of the process; sessions die with it, so there is nothing to
// drain on shutdown.
func (s *SessionSweeper) Run() {
	s.logger.Info().Dur("interval", s.interval).Msg("session sweeper started")

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for range ticker.C {
			if evicted := s.sessions.SweepExpired(); evicted > 0 {
				s.logger.Debug().Int("evicted", evicted).Msg("expired sessions swept")
			}
		}
	}()
}
