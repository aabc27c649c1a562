package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/vehicleseizure/seizure-core/models"
)

// FileStore persists the whole namespace as one JSON document on disk,
// rewritten wholesale on every mutation. No partial updates, no
// transactions. Safe for concurrent use; the scheduler's background
// jobs share the store with the foreground.
type FileStore struct {
	path string

	mu   sync.Mutex
	data map[string]json.RawMessage
}

// NewFileStore loads (or lazily creates) the store file at path.
// A corrupt file is surfaced as a SerializationError rather than being
// silently replaced.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fs, nil
	}
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return fs, nil
	}
	if err := json.Unmarshal(raw, &fs.data); err != nil {
		return nil, &models.SerializationError{Key: path, Err: err}
	}
	return fs, nil
}

// Get returns the raw value stored under key, or ErrAbsent.
func (f *FileStore) Get(key string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.data[key]
	if !ok {
		return nil, ErrAbsent
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out, nil
}

// Set stores value under key and rewrites the backing file.
func (f *FileStore) Set(key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return &models.SerializationError{Key: key, Err: errors.New("value is not valid JSON")}
	}
	stored := make(json.RawMessage, len(value))
	copy(stored, value)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = stored
	return f.flush()
}

// Remove deletes key. Removing an absent key is a no-op.
func (f *FileStore) Remove(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; !ok {
		return
	}
	delete(f.data, key)
	// best effort, the in-memory view is already consistent
	_ = f.flush()
}

// Keys returns the stored key names in sorted order.
func (f *FileStore) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clear drops every key and rewrites the file empty.
func (f *FileStore) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = make(map[string]json.RawMessage)
	_ = f.flush()
}

// flush is called with mu held.
func (f *FileStore) flush() error {
	raw, err := json.Marshal(f.data)
	if err != nil {
		return &models.SerializationError{Key: f.path, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
