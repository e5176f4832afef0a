// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/danielhkuo/tally-board/kvstore"
)

var epoch0 = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fakeRegistry is an editable in-memory registry with error injection.
type fakeRegistry struct {
	mu         sync.Mutex
	candidates []Candidate
	recorded   []string

	CandidatesError   error
	RecordBallotError error
}

func (f *fakeRegistry) Candidates(ctx context.Context) ([]Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CandidatesError != nil {
		return nil, f.CandidatesError
	}
	return append([]Candidate(nil), f.candidates...), nil
}

func (f *fakeRegistry) RecordBallot(ctx context.Context, c Candidate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RecordBallotError != nil {
		return f.RecordBallotError
	}
	f.recorded = append(f.recorded, c.Key())
	return nil
}

func (f *fakeRegistry) set(c Candidate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.candidates {
		if f.candidates[i].Key() == c.Key() {
			f.candidates[i] = c
			return
		}
	}
	f.candidates = append(f.candidates, c)
}

func (f *fakeRegistry) failFetch(err error) {
	f.mu.Lock()
	f.CandidatesError = err
	f.mu.Unlock()
}

var errRegistryDown = errors.New("registry down")

// failingKV fails every call, like a disabled or full local store.
type failingKV struct{}

func (failingKV) Get(string) ([]byte, error)                 { return nil, errors.New("storage disabled") }
func (failingKV) Set(string, []byte) error                   { return errors.New("storage disabled") }
func (failingKV) SetIfAbsent(string, []byte) ([]byte, error) { return nil, errors.New("quota exceeded") }

// flakyKV serves from memory until broken, then fails every call.
type flakyKV struct {
	mu          sync.Mutex
	mem         *kvstore.MemStore
	broken      bool
	setIfAbsent int
}

func newFlakyKV() *flakyKV { return &flakyKV{mem: kvstore.NewMemStore()} }

func (f *flakyKV) Break() {
	f.mu.Lock()
	f.broken = true
	f.mu.Unlock()
}

func (f *flakyKV) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setIfAbsent
}

func (f *flakyKV) Get(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.broken {
		return nil, errors.New("storage disabled")
	}
	return f.mem.Get(key)
}

func (f *flakyKV) Set(key string, val []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.broken {
		return errors.New("storage disabled")
	}
	return f.mem.Set(key, val)
}

func (f *flakyKV) SetIfAbsent(key string, val []byte) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setIfAbsent++
	if f.broken {
		return nil, errors.New("quota exceeded")
	}
	return f.mem.SetIfAbsent(key, val)
}
