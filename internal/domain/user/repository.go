package user

import (
	"context"

	"stagedesk/internal/shared/authorization"
)

type UserRepository interface {
	Save(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, userID uint) (*User, error)
	FindByUUID(ctx context.Context, uuid string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindByManager returns the users directly managed by managerID.
	FindByManager(ctx context.Context, managerID uint) ([]*User, error)
	// FindByRole returns all users holding the given role.
	FindByRole(ctx context.Context, role authorization.UserRole) ([]*User, error)
	// FindAssignableByRole returns active, non-manager users of the given
	// role that have auto-assignment enabled, ordered by account creation
	// time ascending. When lock is true the rows are locked for update so
	// concurrent auto-assign calls serialize on the candidate set.
	FindAssignableByRole(ctx context.Context, role authorization.UserRole, lock bool) ([]*User, error)
}
