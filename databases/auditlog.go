package databases

import (
	"time"

	"go.uber.org/zap"

	"github.com/vehicleseizure/seizure-core/models"
	"github.com/vehicleseizure/seizure-core/storage"
)

// auditLogCap bounds the auditLog collection; the oldest entries are
// evicted first when an append overflows it.
const auditLogCap = 1000

// AuditLogDatabase contains the methods to use with the audit log collection
type AuditLogDatabase struct {
	store storage.KeyValueStore
}

// NewAuditLogDatabase initializes a new instance of the audit log database
// with the provided store
func NewAuditLogDatabase(store storage.KeyValueStore) *AuditLogDatabase {
	return &AuditLogDatabase{store: store}
}

// Entries returns the whole audit log in append order, empty when absent.
func (a *AuditLogDatabase) Entries() ([]models.AuditLogEntry, error) {
	return loadList[models.AuditLogEntry](a.store, AuditLogKey)
}

// Record appends one audit entry. Best-effort: when no session record
// resolves, or the log itself cannot be read or written, the entry is
// dropped without failing the caller's mutation.
func (a *AuditLogDatabase) Record(action, resource, details, severity string) {
	user, ok := currentUser(a.store)
	if !ok {
		return
	}

	entries, err := a.Entries()
	if err != nil {
		zap.S().Warnw("audit log unreadable, dropping entry",
			"action", action,
			"error", err,
		)
		return
	}

	if severity == "" {
		severity = models.SeverityInfo
	}

	var last int64
	if len(entries) > 0 {
		last = entries[len(entries)-1].ID
	}

	entries = append(entries, models.AuditLogEntry{
		ID:        nextEpochID(last),
		Timestamp: nowISO(),
		UserID:    user.ID,
		Action:    action,
		Resource:  resource,
		Details:   details,
		Severity:  severity,
		IPAddress: "localhost",
		Status:    models.AuditStatusSuccess,
	})

	if len(entries) > auditLogCap {
		entries = entries[len(entries)-auditLogCap:]
	}

	if err := storage.SetJSON(a.store, AuditLogKey, entries); err != nil {
		zap.S().Warnw("audit log write failed",
			"action", action,
			"error", err,
		)
	}
}

// PruneOlderThan drops entries with a timestamp before cutoff and
// returns how many were removed. Entries with unparseable timestamps
// are kept.
func (a *AuditLogDatabase) PruneOlderThan(cutoff time.Time) (int, error) {
	entries, err := a.Entries()
	if err != nil {
		return 0, err
	}

	kept := entries[:0]
	for _, e := range entries {
		ts, err := time.Parse(time.RFC3339, e.Timestamp)
		if err == nil && ts.Before(cutoff) {
			continue
		}
		kept = append(kept, e)
	}

	removed := len(entries) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := storage.SetJSON(a.store, AuditLogKey, kept); err != nil {
		return 0, err
	}
	return removed, nil
}
