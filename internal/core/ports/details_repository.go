package ports

import (
	"context"

	"github.com/teamhub/accounts-api/internal/core/domain"
)

// DetailsRepository persists the per-account profile details. One row per
// account; the contact number is unique across rows.
type DetailsRepository interface {
	// Upsert inserts or replaces the row for details.AccountID;
	// domain.ErrDetailsExists when the contact number belongs to another row.
	Upsert(ctx context.Context, details *domain.AccountDetails) error
	// FindByAccountID returns the row for the account, or
	// domain.ErrDetailsNotFound when none exists.
	FindByAccountID(ctx context.Context, accountID string) (*domain.AccountDetails, error)
}
