package ports

import (
	"context"

	"github.com/teamhub/accounts-api/internal/core/domain"
)

type TeamService interface {
	RegisterTeam(ctx context.Context, name string) (*domain.Team, error)
	AddMember(ctx context.Context, teamID, username, role string) (*domain.TeamMembership, error)
}
