// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_StateMachine(t *testing.T) {
	s := NewScheduler(time.Hour, func(context.Context) error { return nil })
	assert.Equal(t, Idle, s.State())

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, Running, s.State())
	assert.ErrorIs(t, s.Start(context.Background()), ErrSchedulerState)

	s.Stop()
	assert.Equal(t, Stopped, s.State())
	s.Stop()
	assert.ErrorIs(t, s.Start(context.Background()), ErrSchedulerState)
}

func TestScheduler_StopBeforeStart(t *testing.T) {
	var passes atomic.Int32
	s := NewScheduler(time.Millisecond, func(context.Context) error {
		passes.Add(1)
		return nil
	})
	s.Stop()
	assert.ErrorIs(t, s.Start(context.Background()), ErrSchedulerState)
	assert.Equal(t, int32(0), passes.Load())
}

func TestScheduler_ImmediateThenPeriodic(t *testing.T) {
	var passes atomic.Int32
	s := NewScheduler(5*time.Millisecond, func(context.Context) error {
		passes.Add(1)
		return nil
	})

	require.NoError(t, s.Start(context.Background()))
	assert.GreaterOrEqual(t, passes.Load(), int32(1), "first pass runs before Start returns")

	assert.Eventually(t, func() bool { return passes.Load() >= 3 }, time.Second, time.Millisecond)
	s.Stop()
}

func TestScheduler_FailedPassKeepsRunning(t *testing.T) {
	var passes atomic.Int32
	s := NewScheduler(2*time.Millisecond, func(context.Context) error {
		passes.Add(1)
		return errRegistryDown
	})
	require.NoError(t, s.Start(context.Background()))
	assert.Eventually(t, func() bool { return passes.Load() >= 3 }, time.Second, time.Millisecond)
	s.Stop()
}

func TestScheduler_NoObserveAfterStop(t *testing.T) {
	clock := newFakeClock(epoch0)
	reg := &fakeRegistry{}
	reg.set(Candidate{ID: "x", Position: "Treasurer", BaseVotes: 100, DailyIncrement: 10})
	e := NewEngine(EngineConfig{Registry: reg, Clock: clock})

	s := NewScheduler(2*time.Millisecond, e.Recompute)
	require.NoError(t, s.Start(context.Background()))
	got, ok := e.Store().Current("Treasurer/x")
	require.True(t, ok)
	assert.Equal(t, int64(100), got)

	s.Stop()
	before := e.Store().Len()

	clock.Advance(3 * 24 * time.Hour)
	time.Sleep(20 * time.Millisecond)

	got, _ = e.Store().Current("Treasurer/x")
	assert.Equal(t, int64(100), got)
	assert.Equal(t, before, e.Store().Len())
}

func TestScheduler_ParentCancel(t *testing.T) {
	var passes atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(time.Millisecond, func(context.Context) error {
		passes.Add(1)
		return nil
	})
	require.NoError(t, s.Start(ctx))
	cancel()

	// Stop must not hang when the loop already exited
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}
