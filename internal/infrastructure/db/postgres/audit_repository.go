package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/teamhub/accounts-api/internal/core/domain"
)

// AuditRepository is the write side of the audit pipeline; dispatcher workers
// call Insert, nothing in the request path does.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	rec := auditEventModel{
		Username: event.Username,
		Action:   event.Action,
		Success:  event.Success,
		Reason:   event.Reason,
		At:       event.At,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
