package sweepers

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Expirer removes entries idle for longer than ttl.
type Expirer interface {
	ExpireIdle(ttl time.Duration) int
}

// SessionSweeper periodically drops idle sessions
type SessionSweeper struct {
	sessions Expirer
	logger   *zerolog.Logger
	ttl      time.Duration
	interval time.Duration
	stopChan chan struct{}
}

// NewSessionSweeper creates a new sweeper for session expiry
func NewSessionSweeper(sessions Expirer, logger *zerolog.Logger, ttl, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		logger:   logger,
		ttl:      ttl,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start runs the sweep loop until ctx is cancelled or Stop is called
func (s *SessionSweeper) Start(ctx context.Context) {
	s.logger.Info().
		Dur("interval", s.interval).
		Dur("ttl", s.ttl).
		Msg("Starting session sweeper")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Session sweeper stopping (context cancelled)")
			return
		case <-s.stopChan:
			s.logger.Info().Msg("Session sweeper stopping (stop signal)")
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Stop signals the sweeper to stop
func (s *SessionSweeper) Stop() {
	close(s.stopChan)
}

// Sweep expires idle sessions once and returns how many were removed
func (s *SessionSweeper) Sweep() int {
	expired := s.sessions.ExpireIdle(s.ttl)
	if expired > 0 {
		s.logger.Info().
			Int("expired", expired).
			Msg("Expired idle sessions")
	}
	return expired
}
