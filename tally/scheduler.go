// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultInterval is the time between scheduled recompute passes.
const DefaultInterval = 60 * time.Second

type State int

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Scheduler runs a pass immediately on Start and then every interval until
// Stop. Once Stop returns no pass is running and none will start.
type Scheduler struct {
	interval time.Duration
	pass     func(context.Context) error

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(interval time.Duration, pass func(context.Context) error) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{interval: interval, pass: pass}
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start moves Idle to Running. The first pass runs before Start returns;
// its error is logged, not returned, and the next tick retries.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Idle {
		return ErrSchedulerState
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.state = Running

	s.runPass(ctx)
	go s.loop(ctx)
	return nil
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// both cases may be ready; cancellation wins
			if ctx.Err() != nil {
				return
			}
			s.runPass(ctx)
		}
	}
}

func (s *Scheduler) runPass(ctx context.Context) {
	if err := s.pass(ctx); err != nil {
		slog.Warn("scheduled recompute failed", "error", err)
	}
}

// Stop cancels the timer and waits for an in-flight pass to finish.
// Safe to call more than once and before Start.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	prev := s.state
	s.state = Stopped
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if prev != Running {
		return
	}
	cancel()
	<-done
}
