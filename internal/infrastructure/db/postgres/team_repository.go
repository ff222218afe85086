package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/teamhub/accounts-api/internal/core/domain"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) CreateTeam(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	rec := teamModel{
		ID:        team.ID,
		Name:      team.Name,
		Active:    team.Active,
		Deleted:   team.Deleted,
		CreatedAt: team.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrTeamExists
		}
		return nil, fmt.Errorf("insert team: %w", err)
	}
	return toDomainTeam(rec), nil
}

func (r *TeamRepository) FindTeamByID(ctx context.Context, id string) (*domain.Team, error) {
	var rec teamModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted = false", id).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("find team: %w", err)
	}
	return toDomainTeam(rec), nil
}

func (r *TeamRepository) AddMember(ctx context.Context, membership *domain.TeamMembership) (*domain.TeamMembership, error) {
	rec := teamMembershipModel{
		ID:        membership.ID,
		TeamID:    membership.TeamID,
		AccountID: membership.AccountID,
		Role:      membership.Role,
		Active:    membership.Active,
		CreatedAt: membership.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrMemberExists
		}
		return nil, fmt.Errorf("insert membership: %w", err)
	}
	return &domain.TeamMembership{
		ID:        rec.ID,
		TeamID:    rec.TeamID,
		AccountID: rec.AccountID,
		Role:      rec.Role,
		Active:    rec.Active,
		CreatedAt: rec.CreatedAt,
	}, nil
}

func toDomainTeam(rec teamModel) *domain.Team {
	return &domain.Team{
		ID:        rec.ID,
		Name:      rec.Name,
		Active:    rec.Active,
		Deleted:   rec.Deleted,
		CreatedAt: rec.CreatedAt,
	}
}
