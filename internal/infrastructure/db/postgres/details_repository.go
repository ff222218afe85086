package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/teamhub/accounts-api/internal/core/domain"
)

type DetailsRepository struct {
	db *gorm.DB
}

func NewDetailsRepository(db *gorm.DB) *DetailsRepository {
	return &DetailsRepository{db: db}
}

// Upsert updates the account's row in place when one exists, otherwise
// inserts it. A duplicate contact number surfaces as ErrDetailsExists.
func (r *DetailsRepository) Upsert(ctx context.Context, details *domain.AccountDetails) error {
	rec := toDetailsModel(details)

	res := r.db.WithContext(ctx).
		Model(&detailsModel{}).
		Where("account_id = ?", rec.AccountID).
		Updates(map[string]any{
			"age":              rec.Age,
			"contact":          rec.Contact,
			"address":          rec.Address,
			"company":          rec.Company,
			"years_experience": rec.YearsExperience,
			"updated_at":       rec.UpdatedAt,
		})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrDetailsExists
		}
		return fmt.Errorf("update details: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDetailsExists
		}
		return fmt.Errorf("insert details: %w", err)
	}
	return nil
}

func (r *DetailsRepository) FindByAccountID(ctx context.Context, accountID string) (*domain.AccountDetails, error) {
	var rec detailsModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDetailsNotFound
		}
		return nil, fmt.Errorf("find details: %w", err)
	}
	return toDomainDetails(rec), nil
}

func toDetailsModel(d *domain.AccountDetails) detailsModel {
	return detailsModel{
		ID:              d.ID,
		AccountID:       d.AccountID,
		Age:             d.Age,
		Contact:         d.Contact,
		Address:         d.Address,
		Company:         d.Company,
		YearsExperience: d.YearsExperience,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func toDomainDetails(rec detailsModel) *domain.AccountDetails {
	return &domain.AccountDetails{
		ID:              rec.ID,
		AccountID:       rec.AccountID,
		Age:             rec.Age,
		Contact:         rec.Contact,
		Address:         rec.Address,
		Company:         rec.Company,
		YearsExperience: rec.YearsExperience,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
}
