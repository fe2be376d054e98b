package session

import (
	"context"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/warp/careerpath/role"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type MemoryStore struct {
	mu     sync.RWMutex
	values map[key]json.RawMessage
}

type key struct {
	Role role.Role
	Name string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[key]json.RawMessage)}
}

// LoadValues returns copies of every value saved for r.
func (m *MemoryStore) LoadValues(_ context.Context, r role.Role) (map[string]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]json.RawMessage)
	for k, v := range m.values {
		if k.Role == r {
			out[k.Name] = append(json.RawMessage(nil), v...)
		}
	}
	return out, nil
}

// SaveValue inserts or replaces a value.
func (m *MemoryStore) SaveValue(_ context.Context, r role.Role, name string, value json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key{Role: r, Name: name}] = append(json.RawMessage(nil), value...)
	return nil
}

// DeleteValue removes a value. Deleting a missing key is not an error.
func (m *MemoryStore) DeleteValue(_ context.Context, r role.Role, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key{Role: r, Name: name})
	return nil
}
