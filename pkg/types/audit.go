package types

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionVerify AuditAction = "VERIFY"
	AuditActionLogin  AuditAction = "LOGIN"
	AuditActionExport AuditAction = "EXPORT"
)

// AuditLog is an append-only forensic trail entry. UserID is deliberately
// not a foreign key: a dangling user id must never fail an append.
type AuditLog struct {
	ID           string      `db:"id" json:"id"`
	UserID       string      `db:"user_id" json:"user_id"`
	Action       AuditAction `db:"action" json:"action"`
	ResourceType string      `db:"resource_type" json:"resource_type"`
	ResourceID   *string     `db:"resource_id" json:"resource_id"`
	Details      *string     `db:"details" json:"details"`
	IPAddress    *string     `db:"ip_address" json:"ip_address"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
}

// AuditEvent is emitted by domain logic after a successful mutation and
// recorded best-effort. It stays transport-agnostic so sinks can fan out.
type AuditEvent struct {
	UserID       string
	Action       AuditAction
	ResourceType string
	ResourceID   string
	Details      string
	IPAddress    string
}

// AuditFilter filters with AND semantics; zero values mean no constraint on
// that dimension.
type AuditFilter struct {
	UserID   string     `form:"user_id"`
	DateFrom *time.Time `form:"date_from"`
	DateTo   *time.Time `form:"date_to"`
}

// SecurityReport carries derived counts over fixed recent windows: seven
// days for the three counters, one day for the suspicious-activity sample.
type SecurityReport struct {
	FailedLogins         int64 `json:"failed_logins"`
	DataExports          int64 `json:"data_exports"`
	RecentChanges        int64 `json:"recent_changes"`
	SuspiciousActivities int64 `json:"suspicious_activities"`
}
