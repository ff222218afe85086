package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/teamhub/accounts-api/internal/core/domain"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	rec := sessionModel{
		ID:        session.ID,
		AccountID: session.AccountID,
		Token:     session.Token,
		Active:    session.Active,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrSessionExists
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindActiveByToken(ctx context.Context, token string) (*domain.Session, error) {
	var rec sessionModel
	err := r.db.WithContext(ctx).
		Where("token = ? AND active = true", token).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &domain.Session{
		ID:        rec.ID,
		AccountID: rec.AccountID,
		Token:     rec.Token,
		Active:    rec.Active,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

// Deactivate flips active to false. Zero rows affected means the session was
// already inactive, which is a success: logout and the lazy-expiry write-back
// may race and both must win.
func (r *SessionRepository) Deactivate(ctx context.Context, sessionID string) error {
	err := r.db.WithContext(ctx).
		Model(&sessionModel{}).
		Where("id = ? AND active = true", sessionID).
		Update("active", false).Error
	if err != nil {
		return fmt.Errorf("deactivate session: %w", err)
	}
	return nil
}
