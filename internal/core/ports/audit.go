package ports

import (
	"context"

	"github.com/teamhub/accounts-api/internal/core/domain"
)

// AuditSink accepts authentication outcomes for asynchronous recording.
// Implementations must not block the calling request.
type AuditSink interface {
	Record(event domain.AuditEvent)
}

// AuditRepository persists audit events (the dispatcher workers' write side).
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
