// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/tally-board/metrics"
)

// Standing is a candidate together with its displayed count.
type Standing struct {
	Candidate Candidate
	Displayed int64
	Leading   bool
}

// Position groups the standings of one election.
type Position struct {
	Name      string
	Standings []Standing
}

type EngineConfig struct {
	Registry Registry
	Epochs   *EpochRegistry
	Store    *Store
	Clock    Clock
	Metrics  *metrics.Tally
}

// Engine recomputes accrued tallies from the registry and serves standings
// read through the store.
type Engine struct {
	registry Registry
	epochs   *EpochRegistry
	store    *Store
	clock    Clock
	metrics  *metrics.Tally
	recorder *Recorder

	// one pass at a time
	passMu sync.Mutex

	mu         sync.RWMutex
	candidates []Candidate
}

func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Store == nil {
		cfg.Store = NewStore(cfg.Metrics)
	}
	if cfg.Epochs == nil {
		cfg.Epochs = NewEpochRegistry(nil, cfg.Clock, cfg.Metrics)
	}

	e := &Engine{
		registry: cfg.Registry,
		epochs:   cfg.Epochs,
		store:    cfg.Store,
		clock:    cfg.Clock,
		metrics:  cfg.Metrics,
	}
	e.recorder = &Recorder{
		store:    e.store,
		registry: e.registry,
		lookup:   e.lookup,
		metrics:  e.metrics,
	}
	return e
}

func (e *Engine) Store() *Store { return e.store }

func (e *Engine) Recorder() *Recorder { return e.recorder }

// Recompute runs one pass: fetch candidates, accrue each from its epoch and
// merge the result into the store. On a fetch failure the previous
// candidates and counts stay as they are.
func (e *Engine) Recompute(ctx context.Context) error {
	e.passMu.Lock()
	defer e.passMu.Unlock()

	start := time.Now()
	candidates, err := e.registry.Candidates(ctx)
	if err != nil {
		e.metrics.RecomputeDone(time.Since(start).Seconds(), true)
		slog.Warn("recompute skipped, keeping last-known tallies", "error", err)
		return &TransientFetchError{Err: err}
	}

	now := e.clock.Now()
	for _, c := range candidates {
		accrued := Accrued(c.BaseVotes, c.DailyIncrement, e.epochFor(c), now)
		e.store.Observe(c.Key(), accrued)
		// the raw operator count can only raise the floor
		e.store.Observe(c.Key(), c.Votes)
	}

	e.mu.Lock()
	e.candidates = candidates
	e.mu.Unlock()

	e.metrics.RecomputeDone(time.Since(start).Seconds(), false)
	slog.Debug("recompute pass done", "candidates", len(candidates))
	return nil
}

func (e *Engine) epochFor(c Candidate) time.Time {
	if c.StartDate != nil {
		return *c.StartDate
	}
	return e.epochs.GetOrCreate(c.Position)
}

// Positions returns every known position in registry order.
func (e *Engine) Positions() []Position {
	e.mu.RLock()
	candidates := e.candidates
	e.mu.RUnlock()

	var order []string
	grouped := make(map[string][]Candidate)
	for _, c := range candidates {
		if _, ok := grouped[c.Position]; !ok {
			order = append(order, c.Position)
		}
		grouped[c.Position] = append(grouped[c.Position], c)
	}

	positions := make([]Position, 0, len(order))
	for _, name := range order {
		positions = append(positions, Position{
			Name:      name,
			Standings: e.standings(grouped[name]),
		})
	}
	return positions
}

// Standings returns one position's standings.
func (e *Engine) Standings(position string) ([]Standing, error) {
	e.mu.RLock()
	var cs []Candidate
	for _, c := range e.candidates {
		if c.Position == position {
			cs = append(cs, c)
		}
	}
	e.mu.RUnlock()

	if len(cs) == 0 {
		return nil, ErrUnknownPosition
	}
	return e.standings(cs), nil
}

func (e *Engine) standings(cs []Candidate) []Standing {
	out := make([]Standing, len(cs))
	var max int64
	for i, c := range cs {
		displayed, _ := e.store.Current(c.Key())
		out[i] = Standing{Candidate: c, Displayed: displayed}
		if displayed > max {
			max = displayed
		}
	}
	for i := range out {
		out[i].Leading = max > 0 && out[i].Displayed == max
	}
	return out
}

func (e *Engine) lookup(position, id string) (Candidate, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, c := range e.candidates {
		if c.Position == position && c.ID == id {
			return c, true
		}
	}
	return Candidate{}, false
}
