package models

import "gorm.io/datatypes"

type TicketModel struct {
	ID                       uint   `gorm:"primaryKey"`
	Number                   string `gorm:"uniqueIndex;size:50;not null"`
	BrandName                string `gorm:"size:200;not null;index"`
	Description              string `gorm:"type:text;not null"`
	IssueType                string `gorm:"size:100"`
	ExpectedOutput           string `gorm:"type:text"`
	Priority                 string `gorm:"size:20;not null;index"`
	Status                   string `gorm:"size:20;not null;index"`
	CreatedBy                uint   `gorm:"not null;index"`
	AssignedTo               *uint  `gorm:"index"`
	CurrentAssignee          *uint  `gorm:"index"`
	ResolutionRemarks        string `gorm:"type:text"`
	PrimaryResolutionRemarks string `gorm:"type:text"`
	ReopenReason             string `gorm:"type:text"`
	AcceptanceRemarks        string `gorm:"type:text"`
	CreatedAt                int64  `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt                int64  `gorm:"autoUpdateTime:milli;not null"`
	LastStatusChangeAt       int64  `gorm:"not null"`
	ResolvedAt               *int64

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type TicketActivityModel struct {
	ID        uint           `gorm:"primaryKey"`
	TicketID  uint           `gorm:"not null;index"`
	ActorID   *uint          `gorm:"index"`
	Action    string         `gorm:"size:30;not null;index"`
	Comment   string         `gorm:"type:text"`
	Payload   datatypes.JSON `gorm:"type:json"`
	CreatedAt int64          `gorm:"autoCreateTime:milli;not null;index"`
}

func (TicketActivityModel) TableName() string {
	return "ticket_activities"
}

type TicketAssignmentModel struct {
	ID               uint `gorm:"primaryKey"`
	TicketID         uint `gorm:"not null;index"`
	AssignedTo       uint `gorm:"not null;index"`
	AssignedBy       uint `gorm:"not null"`
	PreviousAssignee *uint
	Auto             bool   `gorm:"not null;default:false"`
	Notes            string `gorm:"type:text"`
	CreatedAt        int64  `gorm:"autoCreateTime:milli;not null"`
}

func (TicketAssignmentModel) TableName() string {
	return "ticket_assignments"
}
