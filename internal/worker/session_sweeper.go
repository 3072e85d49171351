package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SessionSweeper is the subset of session management required by the worker.
type SessionSweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// Sweeper periodically purges expired sessions.
type Sweeper struct {
	sessions SessionSweeper
	interval time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSweeper constructs a sweeper running every interval.
func NewSweeper(sessions SessionSweeper, interval time.Duration, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

// Start launches background sweeping. Calling Start twice is a no-op.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(runCtx)
}

// Stop cancels the loop and waits for it to exit.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Sweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *Sweeper) sweepOnce(ctx context.Context) {
	removed, err := s.sessions.Sweep(ctx)
	if err != nil {
		s.logger.Error("session sweep failed", slog.String("error", err.Error()))
		return
	}
	if removed > 0 {
		s.logger.Debug("expired sessions removed", slog.Int("count", removed))
	}
}
