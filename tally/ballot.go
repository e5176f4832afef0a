// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"context"
	"log/slog"
	"sync"

	"github.com/danielhkuo/tally-board/metrics"
)

// Recorder applies cast ballots to the displayed tally and forwards them to
// the candidate registry.
type Recorder struct {
	store    *Store
	registry Registry
	lookup   func(position, id string) (Candidate, bool)
	metrics  *metrics.Tally
}

// Receipt describes an accepted ballot.
type Receipt struct {
	Candidate Candidate
	Displayed int64
	// Synced is false when the registry write failed. The displayed bump
	// stands either way.
	Synced bool
}

// Ballot is one visitor's pending selection for a position.
type Ballot struct {
	recorder *Recorder
	position string

	mu       sync.Mutex
	selected string
}

func (r *Recorder) NewBallot(position string) *Ballot {
	return &Ballot{recorder: r, position: position}
}

// Select replaces the pending selection.
func (b *Ballot) Select(candidateID string) {
	b.mu.Lock()
	b.selected = candidateID
	b.mu.Unlock()
}

func (b *Ballot) Selected() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selected
}

// Cast adds one vote to the selected candidate and clears the selection.
// Without a valid selection it returns a *ValidationError and changes nothing.
func (b *Ballot) Cast(ctx context.Context) (Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.selected == "" {
		return Receipt{}, &ValidationError{Field: "candidate_id", Err: ErrNoSelection}
	}
	c, ok := b.recorder.lookup(b.position, b.selected)
	if !ok {
		return Receipt{}, &ValidationError{Field: "candidate_id", Err: ErrUnknownCandidate}
	}

	r := b.recorder
	displayed := r.store.Bump(c.Key())
	b.selected = ""
	r.metrics.BallotCast()

	receipt := Receipt{Candidate: c, Displayed: displayed, Synced: true}
	if err := r.registry.RecordBallot(ctx, c); err != nil {
		r.metrics.BallotSyncFailed()
		slog.Warn("ballot not written to registry", "position", c.Position, "candidate_id", c.ID, "error", err)
		receipt.Synced = false
	}

	return receipt, nil
}
