package models

type AttachmentModel struct {
	ID            uint   `gorm:"primaryKey"`
	TicketID      uint   `gorm:"not null;index"`
	FileName      string `gorm:"size:255;not null"`
	StorageURL    string `gorm:"size:1024;not null"`
	SizeBytes     int64  `gorm:"not null"`
	MimeType      string `gorm:"size:150;not null"`
	UploadedBy    uint   `gorm:"not null;index"`
	UploadContext string `gorm:"size:20;not null;default:'additional'"`
	Inline        bool   `gorm:"not null;default:false"`
	CreatedAt     int64  `gorm:"autoCreateTime:milli;not null"`
}

func (AttachmentModel) TableName() string {
	return "attachments"
}

type DeletionRequestModel struct {
	ID              uint   `gorm:"primaryKey"`
	AttachmentID    uint   `gorm:"not null;index"`
	TicketID        uint   `gorm:"not null;index"`
	RequesterID     uint   `gorm:"not null;index"`
	RequesterRole   string `gorm:"size:20;not null"`
	ApproverRole    string `gorm:"size:20;not null;index"`
	Status          string `gorm:"size:20;not null;index"`
	Reason          string `gorm:"type:text;not null"`
	RejectionReason string `gorm:"type:text"`
	OTPHash         string `gorm:"column:otp_hash;size:64"`
	OTPExpiresAt    *int64 `gorm:"column:otp_expires_at"`
	DecidedBy       *uint
	DecidedAt       *int64
	CreatedAt       int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt       int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (DeletionRequestModel) TableName() string {
	return "deletion_requests"
}
