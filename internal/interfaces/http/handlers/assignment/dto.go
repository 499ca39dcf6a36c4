package assignment

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"stagedesk/internal/application/assignment/usecases"
	"stagedesk/internal/shared/constants"
	"stagedesk/internal/shared/errors"
)

type AssignTicketRequest struct {
	AssigneeID uint   `json:"assignee_id" binding:"required"`
	Notes      string `json:"notes" binding:"max=1000"`
}

type AutoAssignTicketRequest struct {
	Role string `json:"role" binding:"required"`
}

type ToggleAutoAssignRequest struct {
	Enabled bool `json:"enabled"`
}

// AssignTicketResponse is the wire shape for manual and automatic assignment.
type AssignTicketResponse struct {
	Number           string `json:"number"`
	AssignedTo       uint   `json:"assigned_to"`
	AssigneeName     string `json:"assignee_name"`
	PreviousAssignee *uint  `json:"previous_assignee,omitempty"`
	Reassigned       bool   `json:"reassigned"`
}

func newAssignTicketResponse(r *usecases.AssignTicketResult) *AssignTicketResponse {
	return &AssignTicketResponse{
		Number:           r.Number,
		AssignedTo:       r.AssignedTo,
		AssigneeName:     r.AssigneeName,
		PreviousAssignee: r.PreviousAssignee,
		Reassigned:       r.Reassigned,
	}
}

type AutoAssignTicketResponse struct {
	Number       string `json:"number"`
	AssignedTo   uint   `json:"assigned_to"`
	AssigneeName string `json:"assignee_name"`
	ActiveLoad   int64  `json:"active_load"`
}

func newAutoAssignTicketResponse(r *usecases.AutoAssignTicketResult) *AutoAssignTicketResponse {
	return &AutoAssignTicketResponse{
		Number:       r.Number,
		AssignedTo:   r.AssignedTo,
		AssigneeName: r.AssigneeName,
		ActiveLoad:   r.ActiveLoad,
	}
}

func parseTargetUserID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid user id")
	}
	return uint(id), nil
}

func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = constants.DefaultPage
	}

	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(constants.DefaultPageSize)))
	if pageSize < 1 || pageSize > constants.MaxPageSize {
		pageSize = constants.DefaultPageSize
	}
	return page, pageSize
}
