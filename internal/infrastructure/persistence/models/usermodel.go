package models

type UserModel struct {
	ID                uint   `gorm:"primaryKey"`
	UUID              string `gorm:"uniqueIndex;size:36;not null"`
	Email             string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash      string `gorm:"size:255;not null"`
	Name              string `gorm:"size:100;not null"`
	Role              string `gorm:"size:20;not null;index"`
	IsManager         bool   `gorm:"not null;default:false"`
	ManagedBy         *uint  `gorm:"index"`
	IsActive          bool   `gorm:"not null;default:true;index"`
	AutoAssignEnabled bool   `gorm:"not null;default:true"`
	CreatedAt         int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt         int64  `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (UserModel) TableName() string {
	return "users"
}
