package ports

import (
	"context"

	"github.com/teamhub/accounts-api/internal/core/domain"
)

// SessionRepository tracks issued tokens. The table is the single source of
// truth for "is this token currently valid"; uniqueness of token and session
// id is enforced by the store, not the caller.
type SessionRepository interface {
	// Create inserts an active session row; domain.ErrSessionExists on a
	// duplicate token or session id.
	Create(ctx context.Context, session *domain.Session) error
	// FindActiveByToken returns the active row for the token, or
	// domain.ErrSessionNotFound when no active row matches.
	FindActiveByToken(ctx context.Context, token string) (*domain.Session, error)
	// Deactivate flips active to false. Idempotent: deactivating an already
	// inactive session is a no-op success.
	Deactivate(ctx context.Context, sessionID string) error
}
