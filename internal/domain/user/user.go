package user

import (
	"fmt"
	"strings"
	"time"

	"stagedesk/internal/shared/authorization"
)

// User is the identity aggregate. Role and manager links only change through
// administrative action; the active flag is flipped by a manager with
// authority over the user.
type User struct {
	id                uint
	uuid              string
	email             string
	passwordHash      string
	name              string
	role              authorization.UserRole
	isManager         bool
	managedBy         *uint
	isActive          bool
	autoAssignEnabled bool
	createdAt         time.Time
	updatedAt         time.Time
}

func NewUser(uuid, email, passwordHash, name string, role authorization.UserRole) (*User, error) {
	if len(uuid) == 0 {
		return nil, fmt.Errorf("user UUID is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if len(email) == 0 {
		return nil, fmt.Errorf("email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(passwordHash) == 0 {
		return nil, fmt.Errorf("password hash is required")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := time.Now().UTC()

	return &User{
		uuid:              uuid,
		email:             email,
		passwordHash:      passwordHash,
		name:              name,
		role:              role,
		isActive:          true,
		autoAssignEnabled: true,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

func ReconstructUser(
	id uint,
	uuid, email, passwordHash, name string,
	role authorization.UserRole,
	isManager bool,
	managedBy *uint,
	isActive bool,
	autoAssignEnabled bool,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	return &User{
		id:                id,
		uuid:              uuid,
		email:             email,
		passwordHash:      passwordHash,
		name:              name,
		role:              role,
		isManager:         isManager,
		managedBy:         managedBy,
		isActive:          isActive,
		autoAssignEnabled: autoAssignEnabled,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (u *User) ID() uint                     { return u.id }
func (u *User) UUID() string                 { return u.uuid }
func (u *User) Email() string                { return u.email }
func (u *User) PasswordHash() string         { return u.passwordHash }
func (u *User) Name() string                 { return u.name }
func (u *User) Role() authorization.UserRole { return u.role }
func (u *User) IsManager() bool              { return u.isManager }
func (u *User) ManagedBy() *uint             { return u.managedBy }
func (u *User) IsActive() bool               { return u.isActive }
func (u *User) AutoAssignEnabled() bool      { return u.autoAssignEnabled }
func (u *User) CreatedAt() time.Time         { return u.createdAt }
func (u *User) UpdatedAt() time.Time         { return u.updatedAt }

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// Actor converts the user into the policy actor shape.
func (u *User) Actor() authorization.Actor {
	return authorization.Actor{
		ID:        u.id,
		Role:      u.role,
		IsManager: u.isManager,
	}
}

// ToggleActive flips the active flag.
func (u *User) ToggleActive() {
	u.isActive = !u.isActive
	u.updatedAt = time.Now().UTC()
}

// SetAutoAssign enables or disables round-robin eligibility.
func (u *User) SetAutoAssign(enabled bool) {
	u.autoAssignEnabled = enabled
	u.updatedAt = time.Now().UTC()
}

// PromoteToManager marks the user as a team manager.
func (u *User) PromoteToManager() {
	u.isManager = true
	u.updatedAt = time.Now().UTC()
}

// AssignManager links the user to a managing user.
func (u *User) AssignManager(managerID uint) error {
	if managerID == 0 {
		return fmt.Errorf("manager ID cannot be zero")
	}
	if managerID == u.id {
		return fmt.Errorf("user cannot manage themselves")
	}
	u.managedBy = &managerID
	u.updatedAt = time.Now().UTC()
	return nil
}
