package usecases

import (
	"context"

	"gorm.io/gorm"

	"stagedesk/internal/domain/user"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

type ToggleAutoAssignCommand struct {
	// TargetID zero means the actor toggles their own flag.
	TargetID uint
	Actor    authorization.Actor
	Enabled  bool
}

type ToggleAutoAssignResult struct {
	UserID            uint `json:"user_id"`
	AutoAssignEnabled bool `json:"auto_assign_enabled"`
}

// ToggleAutoAssignUseCase opts a user in or out of the auto-assignment pool.
// Users control their own flag; a direct manager or admin controls anyone on
// their team.
type ToggleAutoAssignUseCase struct {
	userRepo user.UserRepository
	logger   logger.Interface
}

func NewToggleAutoAssignUseCase(userRepo user.UserRepository, logger logger.Interface) *ToggleAutoAssignUseCase {
	return &ToggleAutoAssignUseCase{userRepo: userRepo, logger: logger}
}

func (uc *ToggleAutoAssignUseCase) Execute(ctx context.Context, cmd ToggleAutoAssignCommand) (*ToggleAutoAssignResult, error) {
	targetID := cmd.TargetID
	if targetID == 0 {
		targetID = cmd.Actor.ID
	}

	target, err := uc.userRepo.FindByID(ctx, targetID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("user not found")
		}
		return nil, err
	}

	if target.ID() != cmd.Actor.ID && !authorization.CanManageUser(cmd.Actor, target.ManagedBy()) {
		return nil, errors.NewForbiddenError("only the user, their direct manager or admin may change this flag")
	}

	target.SetAutoAssign(cmd.Enabled)

	if err := uc.userRepo.Update(ctx, target); err != nil {
		uc.logger.Errorw("failed to toggle auto-assign flag", "error", err, "user_id", targetID)
		return nil, err
	}

	uc.logger.Infow("auto-assign flag updated",
		"user_id", target.ID(),
		"enabled", cmd.Enabled,
		"actor_id", cmd.Actor.ID,
	)

	return &ToggleAutoAssignResult{
		UserID:            target.ID(),
		AutoAssignEnabled: target.AutoAssignEnabled(),
	}, nil
}
