// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/tally-board/db"
	"github.com/danielhkuo/tally-board/kvstore"
	"github.com/danielhkuo/tally-board/tally"
)

const eastAfrica = "East Africa Regional Representative"

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// newTestEngine wires the built-in election pages and the elections table
// into an engine and runs the first pass.
func newTestEngine(t *testing.T, q *db.Queries) (*tally.Engine, *testClock) {
	t.Helper()

	clock := &testClock{now: time.Now().UTC().Truncate(time.Second)}
	engine := tally.NewEngine(tally.EngineConfig{
		Registry: tally.NewMultiRegistry(tally.DefaultStaticRegistry(), tally.NewSQLRegistry(q, clock)),
		Epochs:   tally.NewEpochRegistry(kvstore.NewMemStore(), clock, nil),
		Clock:    clock,
	})
	if err := engine.Recompute(context.Background()); err != nil {
		t.Fatalf("initial recompute failed: %v", err)
	}
	return engine, clock
}
