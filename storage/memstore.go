package storage

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/vehicleseizure/seizure-core/models"
)

// MemStore is the process-lifetime namespace used for tab-scoped state
// (OTP records, staged signup data) and for tests. Safe for concurrent
// use; the scheduler's background jobs share the store with the
// foreground.
type MemStore struct {
	mu   sync.Mutex
	data map[string]json.RawMessage
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]json.RawMessage)}
}

// Get returns the raw value stored under key, or ErrAbsent.
func (m *MemStore) Get(key string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return nil, ErrAbsent
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out, nil
}

// Set stores value under key.
func (m *MemStore) Set(key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return &models.SerializationError{Key: key, Err: errors.New("value is not valid JSON")}
	}
	stored := make(json.RawMessage, len(value))
	copy(stored, value)
	m.mu.Lock()
	m.data[key] = stored
	m.mu.Unlock()
	return nil
}

// Remove deletes key.
func (m *MemStore) Remove(key string) {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
}

// Keys returns the stored key names in sorted order.
func (m *MemStore) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clear drops every key, mirroring sessionStorage.clear on logout.
func (m *MemStore) Clear() {
	m.mu.Lock()
	m.data = make(map[string]json.RawMessage)
	m.mu.Unlock()
}
