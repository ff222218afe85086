package ports

import (
	"context"

	"github.com/teamhub/accounts-api/internal/core/domain"
)

// ReportRepository reads the denormalized account_activity view. The view is
// consumed, never written, by the application.
type ReportRepository interface {
	ListAccountActivity(ctx context.Context) ([]domain.AccountActivity, error)
}
