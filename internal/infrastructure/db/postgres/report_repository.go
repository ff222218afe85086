package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/teamhub/accounts-api/internal/core/domain"
)

// ReportRepository reads the account_activity view created by Migrate.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

type accountActivityRow struct {
	AccountID      string     `gorm:"column:account_id"`
	Username       string     `gorm:"column:username"`
	Email          string     `gorm:"column:email"`
	Role           string     `gorm:"column:role"`
	AccountActive  bool       `gorm:"column:account_active"`
	AccountDeleted bool       `gorm:"column:account_deleted"`
	TeamName       *string    `gorm:"column:team_name"`
	SessionID      *string    `gorm:"column:session_id"`
	SessionActive  *bool      `gorm:"column:session_active"`
	SessionCreated *time.Time `gorm:"column:session_created_at"`
	SessionExpires *time.Time `gorm:"column:session_expires_at"`
}

func (r *ReportRepository) ListAccountActivity(ctx context.Context) ([]domain.AccountActivity, error) {
	var rows []accountActivityRow
	err := r.db.WithContext(ctx).
		Table("account_activity").
		Order("username").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list account activity: %w", err)
	}

	out := make([]domain.AccountActivity, 0, len(rows))
	for _, row := range rows {
		item := domain.AccountActivity{
			AccountID:      row.AccountID,
			Username:       row.Username,
			Email:          row.Email,
			Role:           row.Role,
			AccountActive:  row.AccountActive,
			AccountDeleted: row.AccountDeleted,
			SessionActive:  row.SessionActive,
			SessionCreated: row.SessionCreated,
			SessionExpires: row.SessionExpires,
		}
		if row.TeamName != nil {
			item.TeamName = *row.TeamName
		}
		if row.SessionID != nil {
			item.SessionID = *row.SessionID
		}
		out = append(out, item)
	}
	return out, nil
}
