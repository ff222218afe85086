package domain

import "time"

// Audit actions recorded by the async audit pipeline.
const (
	AuditLogin  = "login"
	AuditLogout = "logout"
)

// AuditEvent records a single authentication outcome for the audit trail.
type AuditEvent struct {
	Username string    `json:"username"`
	Action   string    `json:"action"`
	Success  bool      `json:"success"`
	Reason   string    `json:"reason,omitempty"`
	At       time.Time `json:"at"`
}
