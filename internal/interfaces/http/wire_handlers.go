package http

import (
	assignmenthandlers "stagedesk/internal/interfaces/http/handlers/assignment"
	attachmenthandlers "stagedesk/internal/interfaces/http/handlers/attachment"
	tickethandlers "stagedesk/internal/interfaces/http/handlers/ticket"
	userhandlers "stagedesk/internal/interfaces/http/handlers/user"
)

func newUserHandler(ucs *useCases) *userhandlers.UserHandler {
	return userhandlers.NewUserHandler(ucs.registerUser, ucs.loginUser, ucs.getProfile)
}

func newTicketHandler(ucs *useCases) *tickethandlers.TicketHandler {
	return tickethandlers.NewTicketHandler(
		ucs.createTicket,
		ucs.updateTicket,
		ucs.resolveTicket,
		ucs.reopenTicket,
		ucs.closeTicket,
		ucs.forceStatus,
		ucs.deleteTicket,
		ucs.getTicket,
		ucs.listTickets,
		ucs.getActivities,
	)
}

func newAssignmentHandler(ucs *useCases) *assignmenthandlers.AssignmentHandler {
	return assignmenthandlers.NewAssignmentHandler(
		ucs.assignTicket,
		ucs.autoAssignTicket,
		ucs.getTeam,
		ucs.getTeamMetrics,
		ucs.getTeamWorkload,
		ucs.getIncoming,
		ucs.getOutgoing,
		ucs.getUnassigned,
		ucs.toggleActive,
		ucs.toggleAutoAssign,
	)
}

func newAttachmentHandler(ucs *useCases) *attachmenthandlers.AttachmentHandler {
	return attachmenthandlers.NewAttachmentHandler(
		ucs.uploadAttachments,
		ucs.requestDeletion,
		ucs.approveDeletion,
		ucs.rejectDeletion,
		ucs.confirmDeletion,
		ucs.listPending,
		ucs.listMine,
	)
}
