package usecases

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"stagedesk/internal/domain/user"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

type LoginUserCommand struct {
	Email    string
	Password string
}

type LoginUserResult struct {
	UserID       uint
	UUID         string
	Email        string
	Name         string
	Role         string
	IsManager    bool
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type LoginUserUseCase struct {
	userRepo user.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewLoginUserUseCase(
	userRepo user.UserRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	logger logger.Interface,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, cmd LoginUserCommand) (*LoginUserResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if len(email) == 0 || len(cmd.Password) == 0 {
		return nil, errors.NewValidationError("email and password are required")
	}

	account, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewUnauthorizedError("invalid credentials")
		}
		uc.logger.Errorw("failed to look up user", "error", err)
		return nil, err
	}

	if !account.IsActive() {
		return nil, errors.NewUnauthorizedError("account is deactivated")
	}

	if err := uc.hasher.Verify(cmd.Password, account.PasswordHash()); err != nil {
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}

	pair, err := uc.tokens.Issue(account.UUID(), account.Role(), account.IsManager())
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "error", err, "user_id", account.ID())
		return nil, errors.NewInternalError("failed to issue tokens")
	}

	uc.logger.Infow("user logged in", "user_id", account.ID(), "role", account.Role().String())

	return &LoginUserResult{
		UserID:       account.ID(),
		UUID:         account.UUID(),
		Email:        account.Email(),
		Name:         account.Name(),
		Role:         account.Role().String(),
		IsManager:    account.IsManager(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
