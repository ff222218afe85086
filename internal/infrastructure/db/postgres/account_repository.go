package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/teamhub/accounts-api/internal/core/domain"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	rec := toAccountModel(account)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return toDomainAccount(rec), nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var rec accountModel
	err := r.db.WithContext(ctx).
		Where("username = ? AND deleted = false", username).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return toDomainAccount(rec), nil
}

func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	var rows []accountModel
	err := r.db.WithContext(ctx).
		Where("deleted = false").
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	accounts := make([]domain.Account, 0, len(rows))
	for _, rec := range rows {
		accounts = append(accounts, *toDomainAccount(rec))
	}
	return accounts, nil
}

func (r *AccountRepository) Save(ctx context.Context, account *domain.Account) error {
	rec := toAccountModel(account)
	res := r.db.WithContext(ctx).
		Model(&accountModel{}).
		Where("id = ?", rec.ID).
		Updates(map[string]any{
			"email":         rec.Email,
			"password_hash": rec.PasswordHash,
			"role":          rec.Role,
			"active":        rec.Active,
			"updated_at":    rec.UpdatedAt,
		})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("save account: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// SoftDelete flags the row; the record persists for referential integrity
// with sessions and memberships.
func (r *AccountRepository) SoftDelete(ctx context.Context, username string) error {
	res := r.db.WithContext(ctx).
		Model(&accountModel{}).
		Where("username = ? AND deleted = false", username).
		Updates(map[string]any{"deleted": true, "active": false})
	if res.Error != nil {
		return fmt.Errorf("soft delete account: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func toAccountModel(a *domain.Account) accountModel {
	return accountModel{
		ID:           a.ID,
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		Active:       a.Active,
		Deleted:      a.Deleted,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toDomainAccount(rec accountModel) *domain.Account {
	return &domain.Account{
		ID:           rec.ID,
		Username:     rec.Username,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		Role:         rec.Role,
		Active:       rec.Active,
		Deleted:      rec.Deleted,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}
