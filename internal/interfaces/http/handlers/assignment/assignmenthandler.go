package assignment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stagedesk/internal/application/assignment/usecases"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
	"stagedesk/internal/shared/utils"
)

// AssignmentHandler serves manual assignment, auto-assignment and the
// manager dashboard endpoints.
type AssignmentHandler struct {
	assignTicketUC     usecases.AssignTicketExecutor
	autoAssignUC       usecases.AutoAssignTicketExecutor
	getTeamUC          usecases.GetTeamExecutor
	getTeamMetricsUC   usecases.GetTeamMetricsExecutor
	getTeamWorkloadUC  usecases.GetTeamWorkloadExecutor
	getIncomingUC      usecases.GetIncomingTicketsExecutor
	getOutgoingUC      usecases.GetOutgoingTicketsExecutor
	getUnassignedUC    usecases.GetUnassignedTicketsExecutor
	toggleActiveUC     usecases.ToggleUserActiveExecutor
	toggleAutoAssignUC usecases.ToggleAutoAssignExecutor
	logger             logger.Interface
}

func NewAssignmentHandler(
	assignTicketUC usecases.AssignTicketExecutor,
	autoAssignUC usecases.AutoAssignTicketExecutor,
	getTeamUC usecases.GetTeamExecutor,
	getTeamMetricsUC usecases.GetTeamMetricsExecutor,
	getTeamWorkloadUC usecases.GetTeamWorkloadExecutor,
	getIncomingUC usecases.GetIncomingTicketsExecutor,
	getOutgoingUC usecases.GetOutgoingTicketsExecutor,
	getUnassignedUC usecases.GetUnassignedTicketsExecutor,
	toggleActiveUC usecases.ToggleUserActiveExecutor,
	toggleAutoAssignUC usecases.ToggleAutoAssignExecutor,
) *AssignmentHandler {
	return &AssignmentHandler{
		assignTicketUC:     assignTicketUC,
		autoAssignUC:       autoAssignUC,
		getTeamUC:          getTeamUC,
		getTeamMetricsUC:   getTeamMetricsUC,
		getTeamWorkloadUC:  getTeamWorkloadUC,
		getIncomingUC:      getIncomingUC,
		getOutgoingUC:      getOutgoingUC,
		getUnassignedUC:    getUnassignedUC,
		toggleActiveUC:     toggleActiveUC,
		toggleAutoAssignUC: toggleAutoAssignUC,
		logger:             logger.NewLogger(),
	}
}

// AssignTicket handles POST /tickets/:number/assign
func (h *AssignmentHandler) AssignTicket(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("ticket number is required"))
		return
	}

	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for assign ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.assignTicketUC.Execute(c.Request.Context(), usecases.AssignTicketCommand{
		Number:     number,
		Actor:      authorization.ActorFromContext(c),
		AssigneeID: req.AssigneeID,
		Notes:      utils.SanitizeText(req.Notes),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket assigned", newAssignTicketResponse(result))
}

// AutoAssignTicket handles POST /tickets/:number/auto-assign
func (h *AssignmentHandler) AutoAssignTicket(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("ticket number is required"))
		return
	}

	var req AutoAssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.autoAssignUC.Execute(c.Request.Context(), usecases.AutoAssignTicketCommand{
		Number: number,
		Actor:  authorization.ActorFromContext(c),
		Role:   req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket auto-assigned", newAutoAssignTicketResponse(result))
}

// GetTeam handles GET /managers/team
func (h *AssignmentHandler) GetTeam(c *gin.Context) {
	result, err := h.getTeamUC.Execute(c.Request.Context(), usecases.GetTeamQuery{
		Actor: authorization.ActorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetTeamMetrics handles GET /managers/metrics
func (h *AssignmentHandler) GetTeamMetrics(c *gin.Context) {
	result, err := h.getTeamMetricsUC.Execute(c.Request.Context(), usecases.GetTeamMetricsQuery{
		Actor: authorization.ActorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetTeamWorkload handles GET /managers/workload
func (h *AssignmentHandler) GetTeamWorkload(c *gin.Context) {
	result, err := h.getTeamWorkloadUC.Execute(c.Request.Context(), usecases.GetTeamWorkloadQuery{
		Actor: authorization.ActorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetIncomingTickets handles GET /managers/incoming
func (h *AssignmentHandler) GetIncomingTickets(c *gin.Context) {
	page, pageSize := parsePagination(c)

	result, err := h.getIncomingUC.Execute(c.Request.Context(), usecases.GetIncomingTicketsQuery{
		Actor:    authorization.ActorFromContext(c),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

// GetOutgoingTickets handles GET /managers/outgoing
func (h *AssignmentHandler) GetOutgoingTickets(c *gin.Context) {
	page, pageSize := parsePagination(c)

	result, err := h.getOutgoingUC.Execute(c.Request.Context(), usecases.GetOutgoingTicketsQuery{
		Actor:    authorization.ActorFromContext(c),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

// GetUnassignedTickets handles GET /managers/tickets/pending
func (h *AssignmentHandler) GetUnassignedTickets(c *gin.Context) {
	page, pageSize := parsePagination(c)

	result, err := h.getUnassignedUC.Execute(c.Request.Context(), usecases.GetUnassignedTicketsQuery{
		Actor:    authorization.ActorFromContext(c),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

// ToggleUserActive handles PATCH /managers/users/:id/toggle-active
func (h *AssignmentHandler) ToggleUserActive(c *gin.Context) {
	targetID, err := parseTargetUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.toggleActiveUC.Execute(c.Request.Context(), usecases.ToggleUserActiveCommand{
		TargetID: targetID,
		Actor:    authorization.ActorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User active flag toggled", result)
}

// ToggleAutoAssign handles PATCH /managers/users/:id/auto-assign
func (h *AssignmentHandler) ToggleAutoAssign(c *gin.Context) {
	targetID, err := parseTargetUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ToggleAutoAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.toggleAutoAssignUC.Execute(c.Request.Context(), usecases.ToggleAutoAssignCommand{
		TargetID: targetID,
		Actor:    authorization.ActorFromContext(c),
		Enabled:  req.Enabled,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Auto-assign flag updated", result)
}
