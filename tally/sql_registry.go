// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"context"

	"github.com/danielhkuo/tally-board/db"
)

// SQLRegistry reads candidates from the elections table. Each row accrues
// from its own start_date.
type SQLRegistry struct {
	q     *db.Queries
	clock Clock
}

func NewSQLRegistry(q *db.Queries, clock Clock) *SQLRegistry {
	return &SQLRegistry{q: q, clock: clock}
}

// Candidates implements the Registry interface.
func (r *SQLRegistry) Candidates(ctx context.Context) ([]Candidate, error) {
	rows, err := r.q.ListElections(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(rows))
	for _, e := range rows {
		c := Candidate{
			ID:             e.ID,
			Position:       e.Position,
			Name:           e.CandidateName,
			Votes:          e.Votes,
			BaseVotes:      e.BaseVotes,
			DailyIncrement: e.DailyIncrement,
		}
		// rows without a start_date fall back to the position's anchor
		if !e.StartDate.IsZero() {
			start := e.StartDate
			c.StartDate = &start
		}
		out = append(out, c)
	}
	return out, nil
}

// RecordBallot implements the Registry interface.
func (r *SQLRegistry) RecordBallot(ctx context.Context, c Candidate) error {
	return r.q.IncrementElectionVotes(ctx, c.ID, r.clock.Now())
}

var (
	_ Registry = (*SQLRegistry)(nil)
	_ Registry = (*StaticRegistry)(nil)
	_ Registry = (*MultiRegistry)(nil)
)

