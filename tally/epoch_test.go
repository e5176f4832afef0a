// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/tally-board/kvstore"
)

func TestEpochRegistry_FirstWriteWins(t *testing.T) {
	clock := newFakeClock(epoch0)
	r := NewEpochRegistry(kvstore.NewMemStore(), clock, nil)

	first := r.GetOrCreate("Treasurer")
	assert.True(t, first.Equal(epoch0))

	clock.Advance(72 * time.Hour)
	assert.True(t, r.GetOrCreate("Treasurer").Equal(epoch0))
	assert.False(t, r.Degraded())
}

func TestEpochRegistry_ScopesAreIndependent(t *testing.T) {
	clock := newFakeClock(epoch0)
	r := NewEpochRegistry(kvstore.NewMemStore(), clock, nil)

	treasurer := r.GetOrCreate("Treasurer")
	clock.Advance(24 * time.Hour)
	vice := r.GetOrCreate("Vice Chairperson")

	assert.True(t, treasurer.Equal(epoch0))
	assert.True(t, vice.Equal(epoch0.Add(24*time.Hour)))
}

func TestEpochRegistry_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epochs.db")
	clock := newFakeClock(epoch0)

	store, err := kvstore.OpenBolt(path)
	require.NoError(t, err)
	r := NewEpochRegistry(store, clock, nil)
	created := r.GetOrCreate("East Africa Regional Representative")
	require.NoError(t, store.Close())

	clock.Advance(10 * 24 * time.Hour)
	reopened, err := kvstore.OpenBolt(path)
	require.NoError(t, err)
	defer reopened.Close()

	r2 := NewEpochRegistry(reopened, clock, nil)
	assert.True(t, r2.GetOrCreate("East Africa Regional Representative").Equal(created))
}

func TestEpochRegistry_DegradesToMemory(t *testing.T) {
	clock := newFakeClock(epoch0)
	r := NewEpochRegistry(failingKV{}, clock, nil)

	first := r.GetOrCreate("Treasurer")
	assert.True(t, first.Equal(epoch0))
	assert.True(t, r.Degraded())

	// still stable for the life of the process
	clock.Advance(48 * time.Hour)
	assert.True(t, r.GetOrCreate("Treasurer").Equal(epoch0))
}

func TestEpochRegistry_NilStore(t *testing.T) {
	r := NewEpochRegistry(nil, newFakeClock(epoch0), nil)
	assert.True(t, r.Degraded())
	assert.True(t, r.GetOrCreate("x").Equal(epoch0))
}

func TestEpochRegistry_UnreadableValue(t *testing.T) {
	store := kvstore.NewMemStore()
	require.NoError(t, store.Set(epochKeyPrefix+"Treasurer", []byte("not a time")))
	clock := newFakeClock(epoch0)
	r := NewEpochRegistry(store, clock, nil)

	assert.True(t, r.GetOrCreate("Treasurer").Equal(epoch0))
	clock.Advance(time.Hour)
	assert.True(t, r.GetOrCreate("Treasurer").Equal(epoch0))

	// the stored value is left alone
	raw, err := store.Get(epochKeyPrefix + "Treasurer")
	require.NoError(t, err)
	assert.Equal(t, "not a time", string(raw))
}

func TestEpochRegistry_KnownAnchorsOutliveStoreFailure(t *testing.T) {
	clock := newFakeClock(epoch0)
	kv := newFlakyKV()
	r := NewEpochRegistry(kv, clock, nil)

	assert.True(t, r.GetOrCreate("Treasurer").Equal(epoch0))
	assert.False(t, r.Degraded())

	clock.Advance(100 * 24 * time.Hour)
	kv.Break()

	// a scope seen before the failure keeps its anchor
	assert.True(t, r.GetOrCreate("Treasurer").Equal(epoch0))

	// a new scope forces a store call, which degrades the registry
	vice := r.GetOrCreate("Vice Chairperson")
	assert.True(t, vice.Equal(epoch0.Add(100*24*time.Hour)))
	assert.True(t, r.Degraded())
	assert.True(t, r.GetOrCreate("Treasurer").Equal(epoch0))
}

func TestEpochRegistry_StoreTouchedOncePerScope(t *testing.T) {
	clock := newFakeClock(epoch0)
	kv := newFlakyKV()
	r := NewEpochRegistry(kv, clock, nil)

	for i := 0; i < 5; i++ {
		r.GetOrCreate("Treasurer")
		clock.Advance(time.Hour)
	}
	assert.Equal(t, 1, kv.Calls())

	r.GetOrCreate("Vice Chairperson")
	assert.Equal(t, 2, kv.Calls())
}
