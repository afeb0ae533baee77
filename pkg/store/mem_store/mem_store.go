package mem_store

import (
	"context"
	"sync"

	"github.com/pmkol/dlist/pkg/store"
)

// MemStore keeps the last snapshot in memory, encoded the same way as
// the redis backend so that stored snapshots never alias the caller's.
type MemStore struct {
	mu    sync.Mutex
	b     []byte
	saves int
}

func NewMemStore() *MemStore {
	return new(MemStore)
}

func (m *MemStore) Save(_ context.Context, s *store.Snapshot) error {
	b, err := store.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.b = b
	m.saves++
	return nil
}

func (m *MemStore) Load(_ context.Context) (*store.Snapshot, error) {
	m.mu.Lock()
	b := m.b
	m.mu.Unlock()
	if b == nil {
		return nil, store.ErrNotFound
	}
	return store.Unmarshal(b)
}

// Saves returns how many times Save succeeded.
func (m *MemStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *MemStore) Close() error {
	return nil
}
