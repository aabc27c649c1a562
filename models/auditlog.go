package models

// Audit entry severities and statuses.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"

	AuditStatusSuccess = "success"
	AuditStatusFailure = "failure"
)

// AuditLogEntry holds the structure for an entry in the auditLog collection
type AuditLogEntry struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	UserID    int64  `json:"userId"`
	Action    string `json:"action"`
	Resource  string `json:"resource,omitempty"`
	Details   string `json:"details,omitempty"`
	Severity  string `json:"severity"`
	IPAddress string `json:"ipAddress"`
	Status    string `json:"status"`
}
