// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package kvstore

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("key not found")

// Store is a small local key-value store.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte) error
	// SetIfAbsent stores val only when key is unset and returns whichever
	// value is stored afterwards.
	SetIfAbsent(key string, val []byte) ([]byte, error)
}

// MemStore keeps values in memory for the life of the process.
type MemStore struct {
	mu sync.RWMutex
	kv map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{kv: make(map[string][]byte)}
}

// Get implements the Store interface.
func (m *MemStore) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.kv[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), val...), nil
}

// Set implements the Store interface.
func (m *MemStore) Set(key string, val []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv[key] = append([]byte(nil), val...)
	return nil
}

// SetIfAbsent implements the Store interface.
func (m *MemStore) SetIfAbsent(key string, val []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.kv[key]; ok {
		return append([]byte(nil), existing...), nil
	}
	m.kv[key] = append([]byte(nil), val...)
	return append([]byte(nil), val...), nil
}
