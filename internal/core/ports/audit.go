package ports

import (
	"context"

	"github.com/userdeck/identity-service/internal/core/domain"
)

// AuditRepository persists security audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// AuditRecorder accepts audit events for asynchronous persistence. Record
// must never block the request path beyond queue capacity.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}
