package migration

import (
	"fmt"

	"gorm.io/gorm"

	"stagedesk/internal/infrastructure/persistence/models"
	"stagedesk/internal/shared/logger"
)

// GormAutoMigrateStrategy migrates the schema from the model structs.
// Development only; script-based migrations own the schema elsewhere.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.gorm"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, migrateModels ...interface{}) error {
	if len(migrateModels) == 0 {
		migrateModels = AutoMigrateModels()
	}

	s.logger.Infow("starting gorm auto-migration", "models_count", len(migrateModels))

	if err := db.AutoMigrate(migrateModels...); err != nil {
		s.logger.Errorw("auto-migration failed", "error", err)
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}

	s.logger.Infow("auto-migration completed successfully")
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.TicketModel{},
		&models.TicketActivityModel{},
		&models.TicketAssignmentModel{},
		&models.AttachmentModel{},
		&models.DeletionRequestModel{},
	}
}
