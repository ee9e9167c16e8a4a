package domain

import "time"

// Audit actions recorded in the security trail.
const (
	AuditActionLogin       = "login"
	AuditActionRegister    = "register"
	AuditActionUserDeleted = "user_deleted"
	AuditActionDenied      = "authz_denied"
)

// Audit results.
const (
	AuditResultOK     = "ok"
	AuditResultFailed = "failed"
)

// AuditEvent is one entry in the security audit trail.
type AuditEvent struct {
	Username  string    `json:"username"`
	ActorID   int64     `json:"actor_id,omitempty"`
	Action    string    `json:"action"`
	Result    string    `json:"result"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
