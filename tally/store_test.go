// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/tally-board/metrics"
)

func TestStore_Observe(t *testing.T) {
	t.Run("lower value does not regress", func(t *testing.T) {
		s := NewStore(nil)
		assert.Equal(t, int64(100), s.Observe("c", 100))
		assert.Equal(t, int64(100), s.Observe("c", 90))
		got, ok := s.Current("c")
		require.True(t, ok)
		assert.Equal(t, int64(100), got)
	})

	t.Run("higher value wins", func(t *testing.T) {
		s := NewStore(nil)
		s.Observe("c", 100)
		assert.Equal(t, int64(150), s.Observe("c", 150))
	})

	t.Run("idempotent", func(t *testing.T) {
		s := NewStore(nil)
		for i := 0; i < 5; i++ {
			assert.Equal(t, int64(100), s.Observe("c", 100))
		}
		got, _ := s.Current("c")
		assert.Equal(t, int64(100), got)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := NewStore(nil)
		s.Observe("a", 10)
		s.Observe("b", 3)
		a, _ := s.Current("a")
		b, _ := s.Current("b")
		assert.Equal(t, int64(10), a)
		assert.Equal(t, int64(3), b)
		_, ok := s.Current("missing")
		assert.False(t, ok)
	})
}

func TestStore_OrderDoesNotMatter(t *testing.T) {
	orders := [][]int64{
		{5, 90, 12, 700, 3},
		{700, 3, 5, 12, 90},
		{3, 5, 12, 90, 700},
	}
	for _, values := range orders {
		s := NewStore(nil)
		for _, v := range values {
			s.Observe("c", v)
		}
		got, _ := s.Current("c")
		assert.Equal(t, int64(700), got)
	}
}

func TestStore_Bump(t *testing.T) {
	s := NewStore(nil)
	s.Observe("x", 756)
	assert.Equal(t, int64(757), s.Bump("x"))
	assert.Equal(t, int64(757), s.Observe("x", 700))

	// unseen keys start from zero
	assert.Equal(t, int64(1), s.Bump("fresh"))
}

func TestStore_ConcurrentReturnsNeverDecrease(t *testing.T) {
	s := NewStore(nil)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			last := int64(-1)
			for i := 0; i < 500; i++ {
				var got int64
				if i%7 == 0 {
					got = s.Bump("c")
				} else {
					got = s.Observe("c", int64((i*31+w*17)%400))
				}
				if got < last {
					t.Errorf("worker %d saw %d after %d", w, got, last)
					return
				}
				last = got
			}
		}(w)
	}
	wg.Wait()
}

func TestStore_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewStore(metrics.NewTally(reg))
	s.Observe("c", 10)
	s.Observe("c", 5)

	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, f := range families {
		for _, m := range f.GetMetric() {
			if m.GetCounter() != nil {
				values[f.GetName()] = m.GetCounter().GetValue()
			}
			if m.GetGauge() != nil {
				values[f.GetName()] = m.GetGauge().GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, values["tally_observe_total"])
	assert.Equal(t, 1.0, values["tally_regressions_suppressed_total"])
	assert.Equal(t, 1.0, values["tally_tracked_candidates"])
}
