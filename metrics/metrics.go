// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Tally holds the Prometheus collectors for the tally engine.
// A nil *Tally is valid and records nothing.
type Tally struct {
	observes           prometheus.Counter
	suppressed         prometheus.Counter
	ballotsCast        prometheus.Counter
	ballotSyncFailures prometheus.Counter
	recomputePasses    prometheus.Counter
	recomputeFailures  prometheus.Counter
	recomputeDuration  prometheus.Histogram
	trackedCandidates  prometheus.Gauge
	epochStoreDegraded prometheus.Gauge
}

// NewTally creates the collectors and registers them on reg.
func NewTally(reg prometheus.Registerer) *Tally {
	m := &Tally{
		observes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tally_observe_total",
			Help: "Values passed through the monotonic merge",
		}),
		suppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tally_regressions_suppressed_total",
			Help: "Observed values lower than the displayed count",
		}),
		ballotsCast: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tally_ballots_cast_total",
			Help: "Ballots applied to the displayed tally",
		}),
		ballotSyncFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tally_ballot_sync_failures_total",
			Help: "Ballots that could not be written to the candidate registry",
		}),
		recomputePasses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tally_recompute_passes_total",
			Help: "Completed recompute passes",
		}),
		recomputeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tally_recompute_failures_total",
			Help: "Recompute passes abandoned because the registry fetch failed",
		}),
		recomputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tally_recompute_duration_seconds",
			Help:    "Time taken by one recompute pass",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		trackedCandidates: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tally_tracked_candidates",
			Help: "Candidates with a displayed count",
		}),
		epochStoreDegraded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tally_epoch_store_degraded",
			Help: "1 when epoch anchors are held in memory only",
		}),
	}

	reg.MustRegister(
		m.observes,
		m.suppressed,
		m.ballotsCast,
		m.ballotSyncFailures,
		m.recomputePasses,
		m.recomputeFailures,
		m.recomputeDuration,
		m.trackedCandidates,
		m.epochStoreDegraded,
	)
	return m
}

func (m *Tally) Observed(suppressed bool) {
	if m == nil {
		return
	}
	m.observes.Inc()
	if suppressed {
		m.suppressed.Inc()
	}
}

func (m *Tally) BallotCast() {
	if m == nil {
		return
	}
	m.ballotsCast.Inc()
}

func (m *Tally) BallotSyncFailed() {
	if m == nil {
		return
	}
	m.ballotSyncFailures.Inc()
}

// RecomputeDone records a pass and how long it took.
func (m *Tally) RecomputeDone(seconds float64, failed bool) {
	if m == nil {
		return
	}
	m.recomputeDuration.Observe(seconds)
	if failed {
		m.recomputeFailures.Inc()
		return
	}
	m.recomputePasses.Inc()
}

func (m *Tally) SetTracked(n int) {
	if m == nil {
		return
	}
	m.trackedCandidates.Set(float64(n))
}

func (m *Tally) SetEpochDegraded(degraded bool) {
	if m == nil {
		return
	}
	if degraded {
		m.epochStoreDegraded.Set(1)
		return
	}
	m.epochStoreDegraded.Set(0)
}
