package http

import (
	assignmentusecases "stagedesk/internal/application/assignment/usecases"
	attachmentusecases "stagedesk/internal/application/attachment/usecases"
	ticketusecases "stagedesk/internal/application/ticket/usecases"
	userusecases "stagedesk/internal/application/user/usecases"
	"stagedesk/internal/infrastructure/storage"
	"stagedesk/internal/shared/config"
	"stagedesk/internal/shared/logger"
)

type useCases struct {
	registerUser *userusecases.RegisterUserUseCase
	loginUser    *userusecases.LoginUserUseCase
	getProfile   *userusecases.GetProfileUseCase

	createTicket  *ticketusecases.CreateTicketUseCase
	updateTicket  *ticketusecases.UpdateTicketUseCase
	resolveTicket *ticketusecases.ResolveTicketUseCase
	reopenTicket  *ticketusecases.ReopenTicketUseCase
	closeTicket   *ticketusecases.CloseTicketUseCase
	forceStatus   *ticketusecases.ForceStatusUseCase
	deleteTicket  *ticketusecases.DeleteTicketUseCase
	getTicket     *ticketusecases.GetTicketUseCase
	listTickets   *ticketusecases.ListTicketsUseCase
	getActivities *ticketusecases.GetActivitiesUseCase

	assignTicket     *assignmentusecases.AssignTicketUseCase
	autoAssignTicket *assignmentusecases.AutoAssignTicketUseCase
	getTeam          *assignmentusecases.GetTeamUseCase
	getTeamMetrics   *assignmentusecases.GetTeamMetricsUseCase
	getTeamWorkload  *assignmentusecases.GetTeamWorkloadUseCase
	getIncoming      *assignmentusecases.GetIncomingTicketsUseCase
	getOutgoing      *assignmentusecases.GetOutgoingTicketsUseCase
	getUnassigned    *assignmentusecases.GetUnassignedTicketsUseCase
	toggleActive     *assignmentusecases.ToggleUserActiveUseCase
	toggleAutoAssign *assignmentusecases.ToggleAutoAssignUseCase

	uploadAttachments *attachmentusecases.UploadAttachmentsUseCase
	requestDeletion   *attachmentusecases.RequestDeletionUseCase
	approveDeletion   *attachmentusecases.ApproveDeletionUseCase
	rejectDeletion    *attachmentusecases.RejectDeletionUseCase
	confirmDeletion   *attachmentusecases.ConfirmDeletionUseCase
	listPending       *attachmentusecases.ListPendingDeletionsUseCase
	listMine          *attachmentusecases.ListMyDeletionRequestsUseCase
}

func newFileStore(cfg *config.StorageConfig) (attachmentusecases.FileStore, error) {
	if cfg.RootDir == "" {
		return storage.NewInlineFileStore(), nil
	}
	return storage.NewLocalFileStore(cfg)
}

func newUseCases(
	repos *repositories,
	tokens userusecases.TokenIssuer,
	hasher userusecases.PasswordHasher,
	mailer notifier,
	store attachmentusecases.FileStore,
	log logger.Interface,
) *useCases {
	visibility := ticketusecases.NewVisibilityResolver(repos.users)

	return &useCases{
		registerUser: userusecases.NewRegisterUserUseCase(repos.users, hasher, log),
		loginUser:    userusecases.NewLoginUserUseCase(repos.users, hasher, tokens, log),
		getProfile:   userusecases.NewGetProfileUseCase(repos.users, log),

		createTicket:  ticketusecases.NewCreateTicketUseCase(repos.tickets, repos.activities, repos.users, repos.numberGen, repos.txManager, log),
		updateTicket:  ticketusecases.NewUpdateTicketUseCase(repos.tickets, repos.activities, visibility, repos.txManager, log),
		resolveTicket: ticketusecases.NewResolveTicketUseCase(repos.tickets, repos.activities, repos.users, visibility, repos.txManager, mailer, log),
		reopenTicket:  ticketusecases.NewReopenTicketUseCase(repos.tickets, repos.activities, visibility, repos.txManager, log),
		closeTicket:   ticketusecases.NewCloseTicketUseCase(repos.tickets, repos.activities, visibility, repos.txManager, log),
		forceStatus:   ticketusecases.NewForceStatusUseCase(repos.tickets, repos.activities, repos.txManager, log),
		deleteTicket:  ticketusecases.NewDeleteTicketUseCase(repos.tickets, repos.txManager, log),
		getTicket:     ticketusecases.NewGetTicketUseCase(repos.tickets, repos.attachments, visibility, log),
		listTickets:   ticketusecases.NewListTicketsUseCase(repos.tickets, visibility, log),
		getActivities: ticketusecases.NewGetActivitiesUseCase(repos.tickets, repos.activities, visibility, log),

		assignTicket:     assignmentusecases.NewAssignTicketUseCase(repos.tickets, repos.assignments, repos.activities, repos.users, repos.txManager, mailer, log),
		autoAssignTicket: assignmentusecases.NewAutoAssignTicketUseCase(repos.tickets, repos.assignments, repos.activities, repos.users, repos.txManager, mailer, log),
		getTeam:          assignmentusecases.NewGetTeamUseCase(repos.users, log),
		getTeamMetrics:   assignmentusecases.NewGetTeamMetricsUseCase(repos.tickets, visibility, log),
		getTeamWorkload:  assignmentusecases.NewGetTeamWorkloadUseCase(repos.tickets, repos.users, log),
		getIncoming:      assignmentusecases.NewGetIncomingTicketsUseCase(repos.tickets, repos.users, log),
		getOutgoing:      assignmentusecases.NewGetOutgoingTicketsUseCase(repos.tickets, repos.users, log),
		getUnassigned:    assignmentusecases.NewGetUnassignedTicketsUseCase(repos.tickets, visibility, log),
		toggleActive:     assignmentusecases.NewToggleUserActiveUseCase(repos.users, log),
		toggleAutoAssign: assignmentusecases.NewToggleAutoAssignUseCase(repos.users, log),

		uploadAttachments: attachmentusecases.NewUploadAttachmentsUseCase(repos.tickets, repos.attachments, repos.activities, visibility, store, repos.txManager, log),
		requestDeletion:   attachmentusecases.NewRequestDeletionUseCase(repos.attachments, repos.deletionRequests, repos.tickets, repos.users, log),
		approveDeletion:   attachmentusecases.NewApproveDeletionUseCase(repos.deletionRequests, repos.attachments, repos.tickets, repos.users, mailer, log),
		rejectDeletion:    attachmentusecases.NewRejectDeletionUseCase(repos.deletionRequests, repos.attachments, repos.tickets, repos.users, mailer, log),
		confirmDeletion:   attachmentusecases.NewConfirmDeletionUseCase(repos.deletionRequests, repos.attachments, repos.activities, store, repos.txManager, log),
		listPending:       attachmentusecases.NewListPendingDeletionsUseCase(repos.deletionRequests, log),
		listMine:          attachmentusecases.NewListMyDeletionRequestsUseCase(repos.deletionRequests, log),
	}
}
