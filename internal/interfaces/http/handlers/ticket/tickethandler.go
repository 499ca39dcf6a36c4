package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stagedesk/internal/application/ticket/usecases"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
	"stagedesk/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC  usecases.CreateTicketExecutor
	updateTicketUC  usecases.UpdateTicketExecutor
	resolveTicketUC usecases.ResolveTicketExecutor
	reopenTicketUC  usecases.ReopenTicketExecutor
	closeTicketUC   usecases.CloseTicketExecutor
	forceStatusUC   usecases.ForceStatusExecutor
	deleteTicketUC  usecases.DeleteTicketExecutor
	getTicketUC     usecases.GetTicketExecutor
	listTicketsUC   usecases.ListTicketsExecutor
	getActivitiesUC usecases.GetActivitiesExecutor
	logger          logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	updateTicketUC usecases.UpdateTicketExecutor,
	resolveTicketUC usecases.ResolveTicketExecutor,
	reopenTicketUC usecases.ReopenTicketExecutor,
	closeTicketUC usecases.CloseTicketExecutor,
	forceStatusUC usecases.ForceStatusExecutor,
	deleteTicketUC usecases.DeleteTicketExecutor,
	getTicketUC usecases.GetTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	getActivitiesUC usecases.GetActivitiesExecutor,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:  createTicketUC,
		updateTicketUC:  updateTicketUC,
		resolveTicketUC: resolveTicketUC,
		reopenTicketUC:  reopenTicketUC,
		closeTicketUC:   closeTicketUC,
		forceStatusUC:   forceStatusUC,
		deleteTicketUC:  deleteTicketUC,
		getTicketUC:     getTicketUC,
		listTicketsUC:   listTicketsUC,
		getActivitiesUC: getActivitiesUC,
		logger:          logger.NewLogger(),
	}
}

func ticketNumber(c *gin.Context) (string, error) {
	number := c.Param("number")
	if number == "" {
		return "", errors.NewValidationError("ticket number is required")
	}
	return number, nil
}

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	actor := authorization.ActorFromContext(c)

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(actor.ID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, newTicketResponse(result), "Ticket created successfully")
}

// GetTicket handles GET /tickets/:number
func (h *TicketHandler) GetTicket(c *gin.Context) {
	number, err := ticketNumber(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{
		Number: number,
		Actor:  authorization.ActorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", &TicketDetailResponse{
		Ticket:      newTicketResponse(result.Ticket),
		Attachments: result.Attachments,
	})
}

// ListTickets handles GET /tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	req, err := parseListTicketsRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), req.ToQuery(authorization.ActorFromContext(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, newTicketResponses(result.Tickets), result.Total, req.Page, req.PageSize)
}

// UpdateTicket handles PATCH /tickets/:number
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	number, err := ticketNumber(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateTicketUC.Execute(c.Request.Context(), req.ToCommand(number, authorization.ActorFromContext(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", newTicketResponse(result))
}

// ResolveTicket handles POST /tickets/:number/resolve
func (h *TicketHandler) ResolveTicket(c *gin.Context) {
	number, err := ticketNumber(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ResolveTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.resolveTicketUC.Execute(c.Request.Context(), usecases.ResolveTicketCommand{
		Number:      number,
		Actor:       authorization.ActorFromContext(c),
		Remarks:     utils.SanitizeText(req.Remarks),
		Attachments: req.Attachments,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket resolved", newTicketResponse(result))
}

// ReopenTicket handles POST /tickets/:number/reopen
func (h *TicketHandler) ReopenTicket(c *gin.Context) {
	number, err := ticketNumber(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReopenTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.reopenTicketUC.Execute(c.Request.Context(), usecases.ReopenTicketCommand{
		Number: number,
		Actor:  authorization.ActorFromContext(c),
		Reason: utils.SanitizeText(req.Reason),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket re-opened", newTicketResponse(result))
}

// CloseTicket handles POST /tickets/:number/close
func (h *TicketHandler) CloseTicket(c *gin.Context) {
	number, err := ticketNumber(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CloseTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.closeTicketUC.Execute(c.Request.Context(), usecases.CloseTicketCommand{
		Number:            number,
		Actor:             authorization.ActorFromContext(c),
		AcceptanceRemarks: utils.SanitizeText(req.AcceptanceRemarks),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket closed", newTicketResponse(result))
}

// ForceStatus handles POST /tickets/:number/force-status
func (h *TicketHandler) ForceStatus(c *gin.Context) {
	number, err := ticketNumber(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ForceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.forceStatusUC.Execute(c.Request.Context(), usecases.ForceStatusCommand{
		Number: number,
		Actor:  authorization.ActorFromContext(c),
		Status: req.Status,
		Reason: utils.SanitizeText(req.Reason),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket status overridden", newTicketResponse(result))
}

// DeleteTicket handles DELETE /tickets/:number
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	number, err := ticketNumber(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	_, err = h.deleteTicketUC.Execute(c.Request.Context(), usecases.DeleteTicketCommand{
		Number: number,
		Actor:  authorization.ActorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// GetActivities handles GET /tickets/:number/activities
func (h *TicketHandler) GetActivities(c *gin.Context) {
	number, err := ticketNumber(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getActivitiesUC.Execute(c.Request.Context(), usecases.GetActivitiesQuery{
		Number: number,
		Actor:  authorization.ActorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
