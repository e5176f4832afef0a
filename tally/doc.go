// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally computes and serves the displayed vote counts of the election pages.

# Accrual

A candidate's count grows by a fixed daily increment for every whole day since
its epoch:

	count := tally.Accrued(baseVotes, dailyIncrement, epoch, now)

Static candidates take their epoch from the EpochRegistry, one anchor per
position, created on first use and never rewritten. Candidates from the
elections table accrue from their own start_date.

# Monotonic Merge

Store.Observe keeps the highest count ever seen per candidate. Accrual results,
cast ballots and back-office edits all pass through it, so a displayed count
never goes down, even when an operator lowers base_votes:

	displayed := store.Observe(c.Key(), accrued)

# Recompute

Engine.Recompute fetches candidates from the Registry and merges fresh accrual
results. A Scheduler drives it on start and every interval:

	sched := tally.NewScheduler(tally.DefaultInterval, engine.Recompute)
	sched.Start(ctx)
	defer sched.Stop()

A failed fetch returns *TransientFetchError and leaves every count in place.

# Ballots

	b := engine.Recorder().NewBallot("Treasurer")
	b.Select("treasurer-zainab")
	receipt, err := b.Cast(ctx)

Cast without a selection returns *ValidationError wrapping ErrNoSelection.
There is no duplicate-voter detection.
*/
package tally
