package ports

import (
	"context"

	"github.com/teamhub/accounts-api/internal/core/domain"
)

// AccountRepository defines the persistence contract for identity records.
// FindByUsername excludes soft-deleted rows; lookups never return the hash
// of a deleted account to the auth path.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Save(ctx context.Context, account *domain.Account) error
	SoftDelete(ctx context.Context, username string) error
}
