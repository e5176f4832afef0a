// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"sync"

	"github.com/danielhkuo/tally-board/metrics"
)

// Store remembers the highest count ever observed per candidate key.
// Every displayed tally is read from here.
type Store struct {
	mu      sync.Mutex
	counts  map[string]int64
	metrics *metrics.Tally
}

func NewStore(m *metrics.Tally) *Store {
	return &Store{
		counts:  make(map[string]int64),
		metrics: m,
	}
}

// Observe merges count into the stored value for key and returns the result,
// which is never lower than any value previously returned for key.
func (s *Store) Observe(key string, count int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observeLocked(key, count)
}

func (s *Store) observeLocked(key string, count int64) int64 {
	prev, seen := s.counts[key]
	suppressed := seen && count < prev
	if !seen || count > prev {
		s.counts[key] = count
		if !seen {
			s.metrics.SetTracked(len(s.counts))
		}
	}
	s.metrics.Observed(suppressed)
	return s.counts[key]
}

// Current returns the displayed count for key.
func (s *Store) Current(key string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count, ok := s.counts[key]
	return count, ok
}

// Bump observes the current count plus one as a single step.
func (s *Store) Bump(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observeLocked(key, s.counts[key]+1)
}

// Len returns the number of tracked keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.counts)
}
