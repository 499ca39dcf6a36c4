package usecases

import (
	"context"

	"gorm.io/gorm"

	"stagedesk/internal/domain/user"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

type ToggleUserActiveCommand struct {
	TargetID uint
	Actor    authorization.Actor
}

type ToggleUserActiveResult struct {
	UserID   uint `json:"user_id"`
	IsActive bool `json:"is_active"`
}

// ToggleUserActiveUseCase flips a user's active flag. Allowed for admin and
// for the target's direct manager only.
type ToggleUserActiveUseCase struct {
	userRepo user.UserRepository
	logger   logger.Interface
}

func NewToggleUserActiveUseCase(userRepo user.UserRepository, logger logger.Interface) *ToggleUserActiveUseCase {
	return &ToggleUserActiveUseCase{userRepo: userRepo, logger: logger}
}

func (uc *ToggleUserActiveUseCase) Execute(ctx context.Context, cmd ToggleUserActiveCommand) (*ToggleUserActiveResult, error) {
	if cmd.TargetID == 0 {
		return nil, errors.NewValidationError("target user ID is required")
	}

	target, err := uc.userRepo.FindByID(ctx, cmd.TargetID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("user not found")
		}
		return nil, err
	}

	if !authorization.CanManageUser(cmd.Actor, target.ManagedBy()) {
		return nil, errors.NewForbiddenError("only the direct manager or admin may deactivate this user")
	}

	target.ToggleActive()

	if err := uc.userRepo.Update(ctx, target); err != nil {
		uc.logger.Errorw("failed to toggle user active flag", "error", err, "user_id", cmd.TargetID)
		return nil, err
	}

	uc.logger.Infow("user active flag toggled",
		"user_id", target.ID(),
		"is_active", target.IsActive(),
		"actor_id", cmd.Actor.ID,
	)

	return &ToggleUserActiveResult{
		UserID:   target.ID(),
		IsActive: target.IsActive(),
	}, nil
}
