// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Candidate is one nominee's identity and tally inputs.
type Candidate struct {
	ID             string
	Position       string
	Name           string
	Expertise      string
	Bio            string
	Votes          int64
	BaseVotes      int64
	DailyIncrement int64
	// StartDate, when set, is the accrual epoch. Otherwise the epoch
	// registry anchor for Position is used.
	StartDate *time.Time
}

// keyEscaper keeps the separator out of both halves of a store key.
var keyEscaper = strings.NewReplacer("%", "%25", "/", "%2F")

// Key identifies the candidate in the tally store. IDs are only unique
// within a position. A "/" inside either part is escaped, so distinct
// candidates never share a key.
func (c Candidate) Key() string {
	return keyEscaper.Replace(c.Position) + "/" + keyEscaper.Replace(c.ID)
}

// Registry supplies candidates and accepts cast ballots.
type Registry interface {
	Candidates(ctx context.Context) ([]Candidate, error)
	RecordBallot(ctx context.Context, c Candidate) error
}

//go:embed elections.yaml
var defaultElections []byte

type staticFile struct {
	Elections []struct {
		Position string `yaml:"position"`
		Nominees []struct {
			ID             string `yaml:"id"`
			Name           string `yaml:"name"`
			Expertise      string `yaml:"expertise"`
			Bio            string `yaml:"bio"`
			BaseVotes      int64  `yaml:"base_votes"`
			DailyIncrement int64  `yaml:"daily_increment"`
		} `yaml:"nominees"`
	} `yaml:"elections"`
}

// StaticRegistry serves a fixed nominee list. Ballots recorded against it
// last for the life of the process.
type StaticRegistry struct {
	candidates []Candidate

	mu    sync.Mutex
	extra map[string]int64
}

// DefaultStaticRegistry returns the built-in election pages.
func DefaultStaticRegistry() *StaticRegistry {
	r, err := ParseStaticRegistry(defaultElections)
	if err != nil {
		panic(fmt.Sprintf("embedded elections.yaml: %v", err))
	}
	return r
}

// LoadStaticRegistry reads a nominee list from a YAML file.
func LoadStaticRegistry(path string) (*StaticRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read elections file: %w", err)
	}
	return ParseStaticRegistry(data)
}

func ParseStaticRegistry(data []byte) (*StaticRegistry, error) {
	var f staticFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse elections: %w", err)
	}

	r := &StaticRegistry{extra: make(map[string]int64)}
	seen := make(map[string]bool)
	for _, e := range f.Elections {
		if e.Position == "" {
			return nil, fmt.Errorf("election without position")
		}
		for _, n := range e.Nominees {
			c := Candidate{
				ID:             n.ID,
				Position:       e.Position,
				Name:           n.Name,
				Expertise:      n.Expertise,
				Bio:            n.Bio,
				Votes:          n.BaseVotes,
				BaseVotes:      n.BaseVotes,
				DailyIncrement: n.DailyIncrement,
			}
			if c.ID == "" {
				return nil, fmt.Errorf("%s: nominee without id", e.Position)
			}
			if c.BaseVotes < 0 || c.DailyIncrement < 0 {
				return nil, fmt.Errorf("%s: negative votes for %s", e.Position, c.ID)
			}
			if seen[c.Key()] {
				return nil, fmt.Errorf("%s: duplicate nominee %s", e.Position, c.ID)
			}
			seen[c.Key()] = true
			r.candidates = append(r.candidates, c)
		}
	}

	return r, nil
}

// Candidates implements the Registry interface.
func (r *StaticRegistry) Candidates(ctx context.Context) ([]Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Candidate, len(r.candidates))
	for i, c := range r.candidates {
		c.Votes += r.extra[c.Key()]
		c.BaseVotes += r.extra[c.Key()]
		out[i] = c
	}
	return out, nil
}

// RecordBallot implements the Registry interface.
func (r *StaticRegistry) RecordBallot(ctx context.Context, c Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, known := range r.candidates {
		if known.Key() == c.Key() {
			r.extra[c.Key()]++
			return nil
		}
	}
	return ErrUnknownCandidate
}

// MultiRegistry joins several registries into one list. A failure in any
// member fails the whole fetch.
type MultiRegistry struct {
	members []Registry

	mu     sync.RWMutex
	owners map[string]Registry
}

func NewMultiRegistry(members ...Registry) *MultiRegistry {
	return &MultiRegistry{
		members: members,
		owners:  make(map[string]Registry),
	}
}

// Candidates implements the Registry interface.
func (m *MultiRegistry) Candidates(ctx context.Context) ([]Candidate, error) {
	var all []Candidate
	owners := make(map[string]Registry)
	for _, member := range m.members {
		cs, err := member.Candidates(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range cs {
			if _, dup := owners[c.Key()]; dup {
				continue
			}
			owners[c.Key()] = member
			all = append(all, c)
		}
	}

	m.mu.Lock()
	m.owners = owners
	m.mu.Unlock()

	return all, nil
}

// RecordBallot implements the Registry interface.
func (m *MultiRegistry) RecordBallot(ctx context.Context, c Candidate) error {
	m.mu.RLock()
	owner, ok := m.owners[c.Key()]
	m.mu.RUnlock()
	if !ok {
		return ErrUnknownCandidate
	}
	return owner.RecordBallot(ctx, c)
}
