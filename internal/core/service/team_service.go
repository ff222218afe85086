package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/teamhub/accounts-api/internal/core/domain"
	"github.com/teamhub/accounts-api/internal/core/ports"
)

type teamService struct {
	teams    ports.TeamRepository
	accounts ports.AccountRepository
}

func NewTeamService(teams ports.TeamRepository, accounts ports.AccountRepository) ports.TeamService {
	return &teamService{teams: teams, accounts: accounts}
}

func (s *teamService) RegisterTeam(ctx context.Context, name string) (*domain.Team, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	team := &domain.Team{
		ID:        uuid.NewString(),
		Name:      name,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	return s.teams.CreateTeam(ctx, team)
}

func (s *teamService) AddMember(ctx context.Context, teamID, username, role string) (*domain.TeamMembership, error) {
	if teamID == "" || username == "" {
		return nil, domain.ErrInvalidInput
	}
	if role == "" {
		role = domain.RoleMember
	}

	team, err := s.teams.FindTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	membership := &domain.TeamMembership{
		ID:        uuid.NewString(),
		TeamID:    team.ID,
		AccountID: account.ID,
		Role:      role,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.teams.AddMember(ctx, membership)
	if err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}
	return created, nil
}
