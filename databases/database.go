// Package databases implements the typed record collections layered over
// the key-value store: wholesale load, validate, mutate, wholesale
// rewrite. Referential integrity across collections is the caller's
// responsibility.
package databases

import (
	"errors"
	"time"

	"github.com/vehicleseizure/seizure-core/models"
	"github.com/vehicleseizure/seizure-core/storage"
)

// Persisted namespace keys. Stable names: data written by earlier
// releases (and the browser build) must keep loading.
const (
	UsersKey           = "users"
	CurrentUserKey     = "currentUser"
	SeizureReportsKey  = "seizureReports"
	VehiclePaymentsKey = "vehiclePayments"
	AuditLogKey        = "auditLog"
	SystemConfigKey    = "systemConfig"
	RememberedUserKey  = "rememberedUser"
)

// AuditTrail records best-effort audit entries for collection mutations.
// Implementations must never fail the mutation that triggered them.
type AuditTrail interface {
	Record(action, resource, details, severity string)
}

// nowISO formats the current time the way Date.toISOString does, so
// records stay byte-compatible with the existing persisted data.
func nowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// nextEpochID returns the current epoch-ms, bumped past last so ids stay
// unique and monotonically increasing even when the clock has not
// advanced between two adds.
func nextEpochID(last int64) int64 {
	id := time.Now().UnixMilli()
	if id <= last {
		id = last + 1
	}
	return id
}

// currentUser resolves the session record at the currentUser key.
func currentUser(store storage.KeyValueStore) (models.User, bool) {
	var u models.User
	if err := storage.GetJSON(store, CurrentUserKey, &u); err != nil {
		return models.User{}, false
	}
	if u.ID == 0 {
		return models.User{}, false
	}
	return u, true
}

// loadList reads a whole collection, defaulting to empty when absent.
func loadList[T any](store storage.KeyValueStore, key string) ([]T, error) {
	var items []T
	err := storage.GetJSON(store, key, &items)
	if errors.Is(err, storage.ErrAbsent) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}
