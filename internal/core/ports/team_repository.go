package ports

import (
	"context"

	"github.com/teamhub/accounts-api/internal/core/domain"
)

// TeamRepository persists teams and team memberships.
type TeamRepository interface {
	CreateTeam(ctx context.Context, team *domain.Team) (*domain.Team, error)
	FindTeamByID(ctx context.Context, id string) (*domain.Team, error)
	AddMember(ctx context.Context, membership *domain.TeamMembership) (*domain.TeamMembership, error)
}
