package storage_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vehicleseizure/seizure-core/models"
	"github.com/vehicleseizure/seizure-core/storage"
)

func TestFileStore_AbsentKey(t *testing.T) {
	fs, err := storage.NewFileStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)

	_, err = fs.Get("users")
	assert.ErrorIs(t, err, storage.ErrAbsent)
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	fs, err := storage.NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, fs.Set("users", json.RawMessage(`[{"id":1}]`)))

	raw, err := fs.Get("users")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(raw))

	// reopen from disk, the value must survive
	fs2, err := storage.NewFileStore(path)
	require.NoError(t, err)
	raw, err = fs2.Get("users")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(raw))
}

func TestFileStore_RemoveAndKeys(t *testing.T) {
	fs, err := storage.NewFileStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)

	require.NoError(t, fs.Set("b", json.RawMessage(`2`)))
	require.NoError(t, fs.Set("a", json.RawMessage(`1`)))
	assert.Equal(t, []string{"a", "b"}, fs.Keys())

	fs.Remove("a")
	_, err = fs.Get("a")
	assert.ErrorIs(t, err, storage.ErrAbsent)

	// removing an absent key is a no-op
	fs.Remove("a")
}

func TestFileStore_RejectsInvalidJSON(t *testing.T) {
	fs, err := storage.NewFileStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)

	err = fs.Set("users", json.RawMessage(`{not json`))
	var serr *models.SerializationError
	assert.ErrorAs(t, err, &serr)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users": [1,`), 0o644))

	_, err := storage.NewFileStore(path)
	var serr *models.SerializationError
	if !errors.As(err, &serr) {
		t.Errorf("expected SerializationError for corrupt file, got %v", err)
	}
}

func TestGetJSON_CorruptValue(t *testing.T) {
	mem := storage.NewMemStore()
	require.NoError(t, mem.Set("users", json.RawMessage(`"not-a-list"`)))

	var users []models.User
	err := storage.GetJSON(mem, "users", &users)
	var serr *models.SerializationError
	assert.ErrorAs(t, err, &serr)
}

func TestStores_ConcurrentAccess(t *testing.T) {
	fs, err := storage.NewFileStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	stores := map[string]storage.KeyValueStore{
		"file": fs,
		"mem":  storage.NewMemStore(),
	}

	// background jobs share the store with the foreground, so mixed
	// readers and writers must not trip the race detector
	for name, s := range stores {
		s := s
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					key := fmt.Sprintf("key-%d", i%2)
					for j := 0; j < 50; j++ {
						if err := s.Set(key, json.RawMessage(`[1,2,3]`)); err != nil {
							t.Errorf("set %s: %v", key, err)
							return
						}
						if _, err := s.Get(key); err != nil {
							t.Errorf("get %s: %v", key, err)
							return
						}
						s.Keys()
					}
				}(i)
			}
			wg.Wait()
		})
	}
}

func TestMemStore_Clear(t *testing.T) {
	mem := storage.NewMemStore()
	require.NoError(t, mem.Set("currentOTP", json.RawMessage(`{}`)))
	require.NoError(t, mem.Set("signupData", json.RawMessage(`{}`)))

	mem.Clear()
	assert.Empty(t, mem.Keys())
	_, err := mem.Get("currentOTP")
	assert.ErrorIs(t, err, storage.ErrAbsent)
}
