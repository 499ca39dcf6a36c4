package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 25
	MaxPageSize     = 100

	// Context keys
	ContextKeyUserID   = "user_id"
	ContextKeyUserUUID = "user_uuid"
	ContextKeyUserRole = "user_role"

	// Attachment limits
	MaxAttachmentsPerUpload = 5
	MaxAttachmentSizeBytes  = 20 << 20

	// Deletion approval
	DeletionOTPLength        = 8
	DeletionOTPExpiryMinutes = 10

	// Database table names
	TableUsers             = "users"
	TableTickets           = "tickets"
	TableTicketActivities  = "ticket_activities"
	TableTicketAssignments = "ticket_assignments"
	TableAttachments       = "attachments"
	TableDeletionRequests  = "deletion_requests"
)
