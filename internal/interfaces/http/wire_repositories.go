package http

import (
	"gorm.io/gorm"

	"stagedesk/internal/domain/attachment"
	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/domain/user"
	"stagedesk/internal/infrastructure/repository"
	"stagedesk/internal/shared/db"
)

type repositories struct {
	users            user.UserRepository
	tickets          ticket.TicketRepository
	activities       ticket.ActivityRepository
	assignments      ticket.AssignmentRepository
	attachments      attachment.AttachmentRepository
	deletionRequests attachment.DeletionRequestRepository
	numberGen        ticket.NumberGenerator
	txManager        *db.TransactionManager
}

func newRepositories(gdb *gorm.DB) *repositories {
	return &repositories{
		users:            repository.NewUserRepository(gdb),
		tickets:          repository.NewTicketRepository(gdb),
		activities:       repository.NewActivityRepository(gdb),
		assignments:      repository.NewAssignmentRepository(gdb),
		attachments:      repository.NewAttachmentRepository(gdb),
		deletionRequests: repository.NewDeletionRequestRepository(gdb),
		numberGen:        repository.NewTicketNumberGenerator(gdb),
		txManager:        db.NewTransactionManager(gdb),
	}
}
