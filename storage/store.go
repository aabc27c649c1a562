// Package storage provides the persisted key-value namespace backing
// every collection. One durable file-backed store stands in for browser
// localStorage, one in-memory store for tab-scoped sessionStorage.
package storage

import (
	"encoding/json"
	"errors"

	"github.com/vehicleseizure/seizure-core/models"
)

// ErrAbsent is returned by Get when the key has never been set. Readers
// can treat it as an empty collection; it is never conflated with
// corrupt data.
var ErrAbsent = errors.New("storage: key absent")

// KeyValueStore is the single persisted JSON namespace. Single-writer,
// single-reader, synchronous; concurrent writers (a second tab) are
// last-write-wins with no lost-update detection.
type KeyValueStore interface {
	Get(key string) (json.RawMessage, error)
	Set(key string, value json.RawMessage) error
	Remove(key string)
	Keys() []string
	Clear()
}

// GetJSON reads key and unmarshals it into v. Absent keys surface
// ErrAbsent; present-but-undecodable data surfaces a SerializationError.
func GetJSON(s KeyValueStore, key string, v interface{}) error {
	raw, err := s.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &models.SerializationError{Key: key, Err: err}
	}
	return nil
}

// SetJSON marshals v and writes it under key.
func SetJSON(s KeyValueStore, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return &models.SerializationError{Key: key, Err: err}
	}
	return s.Set(key, raw)
}
