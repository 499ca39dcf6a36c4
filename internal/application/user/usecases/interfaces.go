package usecases

import (
	"context"

	"stagedesk/internal/shared/authorization"
)

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// TokenPair is what login hands back to the transport layer.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenIssuer mints the token pair returned on login.
type TokenIssuer interface {
	Issue(userUUID string, role authorization.UserRole, isManager bool) (*TokenPair, error)
}

type RegisterUserExecutor interface {
	Execute(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error)
}

type LoginUserExecutor interface {
	Execute(ctx context.Context, cmd LoginUserCommand) (*LoginUserResult, error)
}

type GetProfileExecutor interface {
	Execute(ctx context.Context, query GetProfileQuery) (*ProfileResult, error)
}
