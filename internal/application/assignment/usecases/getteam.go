package usecases

import (
	"context"

	"stagedesk/internal/domain/user"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

type GetTeamQuery struct {
	Actor authorization.Actor
}

type GetTeamResult struct {
	Members []*TeamMember `json:"members"`
}

// GetTeamUseCase lists the actor's direct reports. Admin gets the whole
// growth/ops workforce.
type GetTeamUseCase struct {
	userRepo user.UserRepository
	logger   logger.Interface
}

func NewGetTeamUseCase(userRepo user.UserRepository, logger logger.Interface) *GetTeamUseCase {
	return &GetTeamUseCase{userRepo: userRepo, logger: logger}
}

func (uc *GetTeamUseCase) Execute(ctx context.Context, query GetTeamQuery) (*GetTeamResult, error) {
	if !query.Actor.IsManager && !query.Actor.Role.IsAdmin() {
		return nil, errors.NewForbiddenError("only managers may view the team roster")
	}

	members, err := uc.teamFor(ctx, query.Actor)
	if err != nil {
		uc.logger.Errorw("failed to load team roster", "error", err, "actor_id", query.Actor.ID)
		return nil, err
	}

	result := make([]*TeamMember, 0, len(members))
	for _, m := range members {
		result = append(result, newTeamMember(m))
	}
	return &GetTeamResult{Members: result}, nil
}

func (uc *GetTeamUseCase) teamFor(ctx context.Context, actor authorization.Actor) ([]*user.User, error) {
	if !actor.Role.IsAdmin() {
		return uc.userRepo.FindByManager(ctx, actor.ID)
	}

	growth, err := uc.userRepo.FindByRole(ctx, authorization.RoleGrowth)
	if err != nil {
		return nil, err
	}
	ops, err := uc.userRepo.FindByRole(ctx, authorization.RoleOps)
	if err != nil {
		return nil, err
	}
	return append(growth, ops...), nil
}
