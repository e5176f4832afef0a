// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/tally-board/kvstore"
	"github.com/danielhkuo/tally-board/metrics"
)

const epochKeyPrefix = "election_start_date:"

// EpochRegistry hands out one start anchor per scope. The first anchor
// written for a scope is kept forever.
//
// Every anchor handed out is also kept in memory. If the backing store
// fails, the registry keeps serving those and creates new anchors in memory
// only; the new ones reset on restart.
type EpochRegistry struct {
	store    kvstore.Store
	clock    Clock
	metrics  *metrics.Tally
	mu       sync.Mutex
	degraded bool
	fallback *kvstore.MemStore
}

// NewEpochRegistry builds a registry over store. A nil store starts in
// memory-only mode.
func NewEpochRegistry(store kvstore.Store, clock Clock, m *metrics.Tally) *EpochRegistry {
	r := &EpochRegistry{
		store:    store,
		clock:    clock,
		metrics:  m,
		fallback: kvstore.NewMemStore(),
	}
	if store == nil {
		r.degrade(nil)
	}
	return r
}

// GetOrCreate returns the anchor for scope, creating it from the clock on
// first use. It never fails.
func (r *EpochRegistry) GetOrCreate(scope string) time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := epochKeyPrefix + scope

	// anchors this process has already seen are never read or written again
	if raw, err := r.fallback.Get(key); err == nil {
		if anchor, err := time.Parse(time.RFC3339Nano, string(raw)); err == nil {
			return anchor
		}
	}

	now := r.clock.Now().UTC()
	candidate := []byte(now.Format(time.RFC3339Nano))

	if !r.degraded {
		raw, err := r.store.SetIfAbsent(key, candidate)
		if err == nil {
			anchor, err := time.Parse(time.RFC3339Nano, string(raw))
			if err == nil {
				r.fallback.Set(key, raw)
				return anchor
			}
			slog.Error("unreadable epoch anchor, using in-memory anchor", "scope", scope, "value", string(raw), "error", err)
		} else {
			r.degrade(err)
		}
	}

	// MemStore never fails
	raw, _ := r.fallback.SetIfAbsent(key, candidate)
	anchor, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		return now
	}
	return anchor
}

// Degraded reports whether anchors are held in memory only.
func (r *EpochRegistry) Degraded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.degraded
}

func (r *EpochRegistry) degrade(err error) {
	r.degraded = true
	r.metrics.SetEpochDegraded(true)
	if err != nil {
		slog.Warn("epoch store unavailable, anchors will not survive a restart", "error", err)
	}
}
