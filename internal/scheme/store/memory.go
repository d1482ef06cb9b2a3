package store

import (
	"context"
	"sync"

	"github.com/gogotex/schemes/internal/scheme"
)

// MemoryStore keeps the encoded list in process memory. It goes through the
// same JSON encoding as the durable backends so round-trip behaviour matches.
type MemoryStore struct {
	mu    sync.RWMutex
	data  []byte
	saves int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Driver() string { return "memory" }

func (m *MemoryStore) Load(ctx context.Context) ([]scheme.Scheme, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data == nil {
		return nil, false, nil
	}
	list, err := decode(m.data)
	if err != nil {
		return nil, false, err
	}
	return list, true, nil
}

func (m *MemoryStore) Save(ctx context.Context, list []scheme.Scheme) error {
	b, err := encode(list)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = b
	m.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (m *MemoryStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
