package ports

import (
	"context"

	"github.com/teamhub/accounts-api/internal/core/domain"
)

type AccountService interface {
	Register(ctx context.Context, username, email, password, role string) (*domain.Account, error)
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, username, token string) error

	List(ctx context.Context) ([]domain.Account, error)
	Get(ctx context.Context, username string) (*domain.Account, error)
	Update(ctx context.Context, username string, update domain.AccountUpdate) (*domain.Account, error)
	SoftDelete(ctx context.Context, username string) error

	GetDetails(ctx context.Context, username string) (*domain.AccountDetails, error)
	SaveDetails(ctx context.Context, username string, details domain.AccountDetails) (*domain.AccountDetails, error)
}
