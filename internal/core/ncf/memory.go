package ncf

import (
	"context"
	"sync"
)

// MemoryStore is a mutex-guarded in-memory CounterStore. Suitable for tests
// and for standalone runs without a database; counters do not survive a
// process restart.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[Type]int64
}

// NewMemoryStore creates an empty in-memory counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[Type]int64)}
}

// Get returns the current counter for a type.
func (m *MemoryStore) Get(_ context.Context, t Type) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[t], nil
}

// Increment advances the counter for a type and returns the new value.
func (m *MemoryStore) Increment(_ context.Context, t Type) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[t]++
	return m.counters[t], nil
}

// ResetAll clears every counter.
func (m *MemoryStore) ResetAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = make(map[Type]int64)
	return nil
}

var _ CounterStore = (*MemoryStore)(nil)
