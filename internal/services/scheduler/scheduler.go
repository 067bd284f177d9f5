// Package scheduler drives the session clock with a single periodic tick.
package scheduler

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mcoot/teamdraft/internal/dependencies/clock"
)

// DefaultInterval is the tick period used when none is configured
const DefaultInterval = 50 * time.Millisecond

// Ticker is anything that advances its deadlines to a point in time
type Ticker interface {
	Tick(now time.Time)
}

// Scheduler calls Tick on its target at a fixed interval until stopped
type Scheduler struct {
	target   Ticker
	clock    clock.Clock
	interval time.Duration
	logger   *slog.Logger

	running  atomic.Bool
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a Scheduler. A non-positive interval uses DefaultInterval.
func New(target Ticker, clock clock.Clock, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		target:   target,
		clock:    clock,
		interval: interval,
		logger:   logger.With(slog.String("component", "scheduler")),
		stopChan: make(chan struct{}),
	}
}

// Start begins the tick loop
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		go s.loop()
		s.logger.Info("scheduler started", slog.Duration("interval", s.interval))
	}
}

// Stop halts the loop and waits for the current tick to finish
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.running.CompareAndSwap(true, false) {
			close(s.stopChan)
			s.wg.Wait()
			s.logger.Info("scheduler stopped")
		}
	})
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C():
			s.tick()
		}
	}
}

// tick shields the loop from a panicking target so later ticks still run
func (s *Scheduler) tick() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tick panicked", slog.Any("panic", r))
		}
	}()
	s.target.Tick(s.clock.Now())
}
