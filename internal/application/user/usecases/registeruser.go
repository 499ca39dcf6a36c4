package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stagedesk/internal/domain/user"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

type RegisterUserCommand struct {
	Email    string
	Password string
	Name     string
	Role     string
}

type RegisterUserResult struct {
	UserID    uint
	UUID      string
	Email     string
	Name      string
	Role      string
	CreatedAt time.Time
}

type RegisterUserUseCase struct {
	userRepo user.UserRepository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewRegisterUserUseCase(
	userRepo user.UserRepository,
	hasher PasswordHasher,
	logger logger.Interface,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		uc.logger.Errorw("failed to check email existence", "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewConflictError("a user with this email already exists")
	}

	passwordHash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to process password")
	}

	role := authorization.ParseUserRole(cmd.Role)

	newUser, err := user.NewUser(uuid.NewString(), email, passwordHash, cmd.Name, role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Save(ctx, newUser); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("a user with this email already exists")
		}
		uc.logger.Errorw("failed to save user", "error", err)
		return nil, err
	}

	uc.logger.Infow("user registered", "user_id", newUser.ID(), "email", email, "role", role.String())

	return &RegisterUserResult{
		UserID:    newUser.ID(),
		UUID:      newUser.UUID(),
		Email:     newUser.Email(),
		Name:      newUser.Name(),
		Role:      newUser.Role().String(),
		CreatedAt: newUser.CreatedAt(),
	}, nil
}

func (uc *RegisterUserUseCase) validateCommand(cmd RegisterUserCommand) error {
	if len(strings.TrimSpace(cmd.Email)) == 0 {
		return errors.NewValidationError("email is required")
	}
	if len(cmd.Password) < 8 {
		return errors.NewValidationError("password must be at least 8 characters")
	}
	if len(strings.TrimSpace(cmd.Name)) == 0 {
		return errors.NewValidationError("name is required")
	}
	if cmd.Role != "" && !authorization.UserRole(cmd.Role).IsValid() {
		return errors.NewValidationError("invalid role")
	}
	return nil
}
