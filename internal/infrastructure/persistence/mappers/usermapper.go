package mappers

import (
	"fmt"

	"stagedesk/internal/domain/user"
	"stagedesk/internal/infrastructure/persistence/models"
	"stagedesk/internal/shared/authorization"
)

type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:                u.ID(),
		UUID:              u.UUID(),
		Email:             u.Email(),
		PasswordHash:      u.PasswordHash(),
		Name:              u.Name(),
		Role:              u.Role().String(),
		IsManager:         u.IsManager(),
		ManagedBy:         u.ManagedBy(),
		IsActive:          u.IsActive(),
		AutoAssignEnabled: u.AutoAssignEnabled(),
		CreatedAt:         u.CreatedAt().UnixMilli(),
		UpdatedAt:         u.UpdatedAt().UnixMilli(),
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	role := authorization.UserRole(model.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("user %d has invalid role %q", model.ID, model.Role)
	}

	return user.ReconstructUser(
		model.ID,
		model.UUID,
		model.Email,
		model.PasswordHash,
		model.Name,
		role,
		model.IsManager,
		model.ManagedBy,
		model.IsActive,
		model.AutoAssignEnabled,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
