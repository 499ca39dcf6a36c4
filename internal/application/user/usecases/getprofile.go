package usecases

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stagedesk/internal/domain/user"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

type GetProfileQuery struct {
	UserID uint
}

type ProfileResult struct {
	UserID            uint
	UUID              string
	Email             string
	Name              string
	Role              string
	IsManager         bool
	ManagedBy         *uint
	IsActive          bool
	AutoAssignEnabled bool
	CreatedAt         time.Time
}

type GetProfileUseCase struct {
	userRepo user.UserRepository
	logger   logger.Interface
}

func NewGetProfileUseCase(userRepo user.UserRepository, logger logger.Interface) *GetProfileUseCase {
	return &GetProfileUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, query GetProfileQuery) (*ProfileResult, error) {
	if query.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	account, err := uc.userRepo.FindByID(ctx, query.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("user not found")
		}
		uc.logger.Errorw("failed to load user", "error", err, "user_id", query.UserID)
		return nil, err
	}

	return profileFromUser(account), nil
}

func profileFromUser(account *user.User) *ProfileResult {
	return &ProfileResult{
		UserID:            account.ID(),
		UUID:              account.UUID(),
		Email:             account.Email(),
		Name:              account.Name(),
		Role:              account.Role().String(),
		IsManager:         account.IsManager(),
		ManagedBy:         account.ManagedBy(),
		IsActive:          account.IsActive(),
		AutoAssignEnabled: account.AutoAssignEnabled(),
		CreatedAt:         account.CreatedAt(),
	}
}
