package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stagedesk/internal/domain/user"
	"stagedesk/internal/infrastructure/persistence/mappers"
	"stagedesk/internal/infrastructure/persistence/models"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/db"
)

type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
}

func NewUserRepository(gdb *gorm.DB) *UserRepository {
	return &UserRepository{
		db:     gdb,
		mapper: mappers.NewUserMapper(),
	}
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return u.SetID(model.ID)
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.UserModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "uuid", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, userID uint) (*user.User, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *UserRepository) FindByUUID(ctx context.Context, uuid string) (*user.User, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("uuid = ?", uuid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *UserRepository) FindByManager(ctx context.Context, managerID uint) ([]*user.User, error) {
	var userModels []models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("managed_by = ?", managerID).
		Order("created_at ASC, id ASC").
		Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list managed users: %w", err)
	}

	return r.toDomainSlice(userModels)
}

func (r *UserRepository) FindByRole(ctx context.Context, role authorization.UserRole) ([]*user.User, error) {
	var userModels []models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("role = ?", role.String()).
		Order("created_at ASC, id ASC").
		Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}

	return r.toDomainSlice(userModels)
}

func (r *UserRepository) FindAssignableByRole(ctx context.Context, role authorization.UserRole, lock bool) ([]*user.User, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.
		Where("role = ?", role.String()).
		Where("is_active = ?", true).
		Where("is_manager = ?", false).
		Where("auto_assign_enabled = ?", true).
		Order("created_at ASC, id ASC")

	if lock {
		// FOR UPDATE so concurrent auto-assignments serialize on the pool.
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var userModels []models.UserModel
	if err := query.Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list assignable users: %w", err)
	}

	return r.toDomainSlice(userModels)
}

func (r *UserRepository) toDomainSlice(userModels []models.UserModel) ([]*user.User, error) {
	users := make([]*user.User, len(userModels))
	for i := range userModels {
		u, err := r.mapper.ToDomain(&userModels[i])
		if err != nil {
			return nil, err
		}
		users[i] = u
	}
	return users, nil
}
